package clidelivery

import (
	"errors"

	"github.com/go-petr/atm-ledger/internal/domain"
)

// errorMessage translates a command error into the text shown to the user.
func errorMessage(command string, err error) string {
	switch {
	case errors.Is(err, errNotANumber):
		return "Invalid amount. Please enter a number."
	case errors.Is(err, errTooManyDecimals):
		return "Amount cannot have more than two decimal places."
	case errors.Is(err, domain.ErrPasswordTooLong):
		return "Password cannot be longer than 72 bytes."
	case errors.Is(err, domain.ErrInvalidAmount):
		if command == "withdraw" {
			return "Withdrawal amount must be positive."
		}
		return "Deposit amount must be positive."
	case command == "register" && errors.Is(err, domain.ErrValidation):
		return "Username and password cannot be empty."
	case errors.Is(err, domain.ErrValidation):
		return "Invalid input."
	case errors.Is(err, domain.ErrUsernameAlreadyExists):
		return "Username already exists. Please choose another."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "Insufficient funds. Cannot withdraw."
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "Please log in first."
	case errors.Is(err, domain.ErrAccountNotFound):
		return "Error retrieving account. Please log in again."
	}

	switch command {
	case "register":
		return "Registration failed. Please try again later."
	case "login":
		return "Login failed. Please try again later."
	case "check_balance":
		return "Error checking balance."
	case "deposit":
		return "Deposit failed."
	case "withdraw":
		return "Withdrawal failed."
	case "history":
		return "Error retrieving history."
	default:
		return "Operation failed."
	}
}
