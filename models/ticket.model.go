package models

import "gorm.io/gorm"

// Ticket defaults. Both the column defaults and the create pipeline read
// these constants so the two can never drift apart.
const (
	DefaultTicketStatus   = "open"
	DefaultTicketPriority = "medium"
)

type Ticket struct {
	gorm.Model
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Status      string `gorm:"size:20;default:'open'" json:"status"`
	Source      string `gorm:"size:20;not null" json:"source"`
	Priority    string `gorm:"size:20;default:'medium'" json:"priority"`
	OwnerID     *uint  `json:"owner"`
	Owner       *User  `gorm:"foreignKey:OwnerID" json:"-"`
	PhoneNumber string `gorm:"size:20" json:"phone_number,omitempty"`
}
