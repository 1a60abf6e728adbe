package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MovementIncome  = "INCOME"
	MovementExpense = "EXPENSE"
)

// Movement is a single accounting entry against a treasury account
type Movement struct {
	gorm.Model
	AccountID    uint      `json:"account_id" gorm:"index;not null"`
	Kind         string    `json:"kind" gorm:"not null"` // INCOME, EXPENSE
	Amount       float64   `json:"amount" gorm:"not null"`
	Concept      string    `json:"concept"`
	Reference    string    `json:"reference" gorm:"uniqueIndex"` // uuid, for export reconciliation
	EnrollmentID *uint     `json:"enrollment_id"`                // set when the movement is a course payment
	OccurredAt   time.Time `json:"occurred_at"`
	IsDeleted    bool      `json:"-" gorm:"default:false"`

	Account Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
}
