package admission

import (
	"cocina/capacity"
	"cocina/models"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Admission error taxonomy. Controllers map these onto HTTP statuses;
// anything else coming out of Enroll wraps ErrStoreUnavailable.
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseFull       = errors.New("course is full")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this course")
	ErrPhoneRequired    = errors.New("phone number required")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Request carries the caller-provided admission fields
type Request struct {
	Phone         string
	PaymentMethod string
}

// Service runs the enrollment admission flow and the legacy counter resync.
//
// The capacity check is a fresh read taken inside the same attempt, never a
// cached value. It is still check-then-act: two admissions racing on the
// last seat can both pass the check before either row lands. The store gives
// no mutual exclusion here and this service does not pretend otherwise.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Enroll admits a user into a course. The checks run sequentially: course
// existence, fresh capacity, duplicate enrollment, phone resolution, then the
// pending enrollment row is written. A store failure during any check aborts
// the admission rather than proceeding on stale data.
func (s *Service) Enroll(courseID uint, user models.User, req Request) (*models.Enrollment, error) {
	var course models.Course
	err := s.db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, "ACTIVE").First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Fresh read of the full enrollment set; the same rows answer both the
	// capacity and the duplicate check.
	var enrollments []models.Enrollment
	if err := s.db.Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if capacity.CountActive(enrollments) >= course.Capacity {
		return nil, ErrCourseFull
	}

	for _, e := range enrollments {
		if e.UserID == user.ID && e.Status.IsActive() {
			return nil, ErrAlreadyEnrolled
		}
	}

	phone, err := s.resolvePhone(&user, req.Phone)
	if err != nil {
		return nil, err
	}

	enrollment := models.Enrollment{
		CourseID:      course.ID,
		UserID:        user.ID,
		UserEmail:     user.Email,
		UserName:      user.Name,
		Phone:         phone,
		Amount:        course.Price,
		EnrolledAt:    time.Now(),
		Status:        models.EnrollmentPending,
		PaymentMethod: req.PaymentMethod,
	}

	tx := s.db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	tx.Commit()

	return &enrollment, nil
}

// resolvePhone returns the phone for the enrollment: the one supplied with
// the request, or the one already on the profile. A supplied phone is saved
// to the profile the first time; profile updates are best-effort and never
// fail the admission.
func (s *Service) resolvePhone(user *models.User, supplied string) (string, error) {
	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		if user.Phone == "" {
			return "", ErrPhoneRequired
		}
		return user.Phone, nil
	}

	if user.Phone == "" {
		if err := s.db.Model(user).Update("phone", supplied).Error; err == nil {
			user.Phone = supplied
		}
	}
	return supplied, nil
}

// Resync recomputes the active-enrollment count for a course and overwrites
// the legacy Inscriptos counter. Idempotent for unchanged enrollment data.
func (s *Service) Resync(courseID uint) (int, error) {
	var course models.Course
	err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCourseNotFound
		}
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var enrollments []models.Enrollment
	if err := s.db.Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	count := capacity.CountActive(enrollments)
	if err := s.db.Model(&course).Update("inscriptos", count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return count, nil
}

// ResyncAll repairs the legacy counter of every live course. Returns the
// number of courses touched; individual failures are collected, not fatal.
func (s *Service) ResyncAll() (int, error) {
	var courses []models.Course
	if err := s.db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	touched := 0
	var firstErr error
	for _, course := range courses {
		if _, err := s.Resync(course.ID); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		touched++
	}
	return touched, firstErr
}
