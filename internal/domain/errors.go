// Package domain provides definitions of all entities and their errors.
package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of all errors caused by bad caller input.
// Such errors are always returned before any storage access.
var ErrValidation = errors.New("validation failed")

var (
	// ErrEmptyUsername indicates that the username is empty.
	ErrEmptyUsername = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	// ErrEmptyPassword indicates that the password is empty.
	ErrEmptyPassword = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	// ErrPasswordTooLong indicates that the password exceeds the hashable length.
	ErrPasswordTooLong = fmt.Errorf("%w: password cannot be longer than 72 bytes", ErrValidation)
	// ErrInvalidAmount indicates that the amount is not positive.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", ErrValidation)
	// ErrInvalidTransactionKind indicates unknown transaction kind.
	ErrInvalidTransactionKind = fmt.Errorf("%w: unknown transaction kind", ErrValidation)
)

var (
	// ErrNotAuthenticated indicates that the operation requires an active session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials indicates unknown username or wrong password.
	// Both cases are reported the same way on purpose.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
