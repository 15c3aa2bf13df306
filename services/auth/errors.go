package auth

import "errors"

var (
	ErrEmailInUse       = errors.New("email address already in use")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrInvalidToken     = errors.New("invalid or revoked id token")
	ErrWeakPassword     = errors.New("password must be at least 6 characters")
	ErrInvalidResetCode = errors.New("password reset code is invalid or expired")
	ErrUserDisabled     = errors.New("user account is disabled")
)

// MinPasswordLength is enforced by the identity service as well.
const MinPasswordLength = 6
