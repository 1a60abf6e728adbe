package models

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus is the closed set of enrollment states. Anything outside
// this set never counts toward a course's occupied capacity.
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentPaid      EnrollmentStatus = "paid"
	EnrollmentConfirmed EnrollmentStatus = "confirmed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// ActiveStatuses are the statuses that occupy a seat
var ActiveStatuses = []EnrollmentStatus{EnrollmentPending, EnrollmentPaid, EnrollmentConfirmed}

// IsActive reports whether the status occupies a seat. Unknown statuses do not.
func (s EnrollmentStatus) IsActive() bool {
	switch s {
	case EnrollmentPending, EnrollmentPaid, EnrollmentConfirmed:
		return true
	case EnrollmentCancelled:
		return false
	}
	return false
}

// IsValid reports whether the status is one of the four known states
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentPending, EnrollmentPaid, EnrollmentConfirmed, EnrollmentCancelled:
		return true
	}
	return false
}

// Enrollment tracks a member's seat in a course
type Enrollment struct {
	gorm.Model
	CourseID      uint             `json:"course_id" gorm:"index;not null"`
	UserID        uint             `json:"user_id" gorm:"index;not null"`
	UserEmail     string           `json:"user_email"`
	UserName      string           `json:"user_name"`
	Phone         string           `json:"phone"`
	Amount        float64          `json:"amount" gorm:"default:0"`
	EnrolledAt    time.Time        `json:"enrolled_at"`
	Status        EnrollmentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PaymentMethod string           `json:"payment_method"`
	// Payment proof is stored inline as a base64 blob; the store has no
	// separate file bucket for proofs.
	ProofData string `json:"proof_data,omitempty"`
	ProofMIME string `json:"proof_mime,omitempty"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
