package verification

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"crm/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength is the minimum accepted length for a new password.
const MinPasswordLength = 8

// maxCodeAttempts bounds regeneration when a generated code collides with
// an existing one. The code column is unique, so a collision surfaces as a
// duplicate-key error on insert.
const maxCodeAttempts = 5

// Store manages the verification-code lifecycle on top of the database.
// Codes are single-use and expire after models.VerificationCodeExpirationMinutes.
type Store struct {
	Db *gorm.DB
	// Cost is the bcrypt cost used when applying a new password.
	Cost int
}

func NewStore(db *gorm.DB, cost int) *Store {
	return &Store{Db: db, Cost: cost}
}

// Issue invalidates every existing code for the email and persists a fresh
// one. Invalidation and insert run in one transaction so two concurrent
// issues for the same email cannot both leave an active code behind.
func (s *Store) Issue(email string) (*models.VerificationCode, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return nil, err
		}

		record := &models.VerificationCode{Email: email, Code: code}
		err = s.Db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.VerificationCode{}).
				Where("email = ?", email).
				Update("is_used", true).Error; err != nil {
				return err
			}
			return tx.Create(record).Error
		})
		if err == nil {
			return record, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Collided with another active code, try a new one.
			continue
		}
		return nil, err
	}
	return nil, ErrCodeConflict
}

// Consume resolves the newest unused record for the code, checks validity,
// applies the new password to the matching user and marks the record used.
// Marking used is a compare-and-set on is_used inside the transaction, so
// two racing consumes for the same code cannot both succeed.
//
// Lookup is by code alone, matching the upstream behaviour. See DESIGN.md
// for the keyspace concern that comes with that.
func (s *Store) Consume(code, newPassword string) (*models.User, error) {
	if len(strings.TrimSpace(newPassword)) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var user models.User
	err := s.Db.Transaction(func(tx *gorm.DB) error {
		var record models.VerificationCode
		if err := tx.Where("code = ? AND is_used = ?", code, false).
			Order("created_at DESC").
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !record.IsValid() {
			return ErrExpired
		}

		if err := tx.Where("email = ?", record.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// Claim the code before touching the credential. RowsAffected == 0
		// means a concurrent consume won the race.
		result := tx.Model(&models.VerificationCode{}).
			Where("id = ? AND is_used = ?", record.ID, false).
			Update("is_used", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrExpired
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.Cost)
		if err != nil {
			return err
		}
		return tx.Model(&user).Update("password", string(hashed)).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// randomCode returns a random 6-digit decimal string.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
