package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationCodeExpirationMinutes is how long a code stays consumable
// after creation.
const VerificationCodeExpirationMinutes = 5

// VerificationCode is a one-time numeric code proving control of an email
// address, used to authorize a password reset. Codes are never deleted here;
// they are superseded (marked used) when a new one is issued for the same
// email, consumed once, or left to expire.
type VerificationCode struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string     `gorm:"size:100;index;not null" json:"email"`
	Code       string     `gorm:"size:6;uniqueIndex;not null" json:"code"`
	CreatedAt  time.Time  `json:"created_at"`
	IsUsed     bool       `gorm:"default:false" json:"is_used"`
	ResetToken *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"reset_token,omitempty"`
}

func (v *VerificationCode) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// IsValid reports whether the code can still be consumed: not yet used and
// within the expiration window.
func (v *VerificationCode) IsValid() bool {
	if v.IsUsed {
		return false
	}
	expiration := v.CreatedAt.Add(VerificationCodeExpirationMinutes * time.Minute)
	return !time.Now().After(expiration)
}
