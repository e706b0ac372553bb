package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// Pharmacy errors
var (
	ErrPharmacyNotFound = errors.New("pharmacy not found")
	ErrPharmacyRequired = errors.New("pharmacy is required")
)

// Stock errors
var (
	ErrEmptyMedicationName  = errors.New("medication name is required")
	ErrStockIndexOutOfRange = errors.New("stock index out of range")
	ErrNegativeQuantity     = errors.New("quantity must not be negative")
	ErrNegativePrice        = errors.New("price must not be negative")
)

// External collaborator errors
var (
	ErrAssistantUnavailable = errors.New("assistant service unavailable")
	ErrProviderUnavailable  = errors.New("identity provider unavailable")
)
