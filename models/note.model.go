package models

import "gorm.io/gorm"

// Note is a free-form back-office note shared between administrators
type Note struct {
	gorm.Model
	Title     string `json:"title" gorm:"not null"`
	Body      string `json:"body"`
	AuthorID  uint   `json:"author_id" gorm:"index"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
