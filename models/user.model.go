package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"default:''" json:"first_name"`
	LastName     string `gorm:"default:''" json:"last_name"`
	PhoneNumber  string `gorm:"size:20" json:"phone_number,omitempty"`
	IndustryType string `gorm:"size:100" json:"industry_type,omitempty"`
	Country      string `gorm:"size:100" json:"country,omitempty"`
}
