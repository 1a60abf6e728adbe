package models

import (
	"time"

	"gorm.io/gorm"
)

// Course represents a cooking course offered by the club
type Course struct {
	gorm.Model
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Price       float64   `json:"price" gorm:"default:0"`
	Capacity    int       `json:"capacity" gorm:"not null"`
	Status      string    `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, CANCELLED
	// Inscriptos is a legacy denormalized seat counter kept for display and
	// repaired via resync. Admission decisions never read it; occupancy is
	// always recomputed from enrollment rows.
	Inscriptos int  `json:"inscriptos" gorm:"default:0"`
	IsDeleted  bool `json:"-" gorm:"default:false"`
}
