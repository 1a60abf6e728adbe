package capacity

import (
	"cocina/models"

	"gorm.io/gorm"
)

// Source provides fresh enrollment reads for one course
type Source interface {
	Enrollments(courseID uint) ([]models.Enrollment, error)
}

// DBSource reads enrollments straight from the store
type DBSource struct {
	Db *gorm.DB
}

func (s DBSource) Enrollments(courseID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.Db.Where("course_id = ?", courseID).Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}
