package verification

import "errors"

var (
	// ErrNotFound means no active record matches the supplied code.
	ErrNotFound = errors.New("verification code not found")
	// ErrExpired means the code exists but is no longer consumable,
	// either past its expiration window or already used.
	ErrExpired = errors.New("verification code expired or already used")
	// ErrUserNotFound means the code resolved to an email with no account.
	ErrUserNotFound = errors.New("user account not found")
	// ErrCodeConflict means a unique code could not be generated after
	// the maximum number of attempts.
	ErrCodeConflict = errors.New("could not generate a unique verification code")
	// ErrPasswordTooShort rejects the new password before any lookup.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
)
