package models

import "gorm.io/gorm"

// Account is a club treasury account (cash box, bank account, ...)
type Account struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Balance     float64 `json:"balance" gorm:"default:0"`
	IsDeleted   bool    `json:"-" gorm:"default:false"`
}
