package auth

import "errors"

var (
	// ErrUserNotFound and ErrInvalidCredential are kept separate
	// internally but must be surfaced to users as the same generic
	// login failure
	ErrUserNotFound      = errors.New("no account with that email")
	ErrInvalidCredential = errors.New("invalid credentials")

	ErrEmailTaken = errors.New("email is already registered")

	// ErrTokenInvalid covers both expired and unmatched reset tokens.
	// Callers must not be able to tell which case occurred
	ErrTokenInvalid = errors.New("reset token invalid or expired")

	ErrDelivery = errors.New("failed to deliver mail")
)
