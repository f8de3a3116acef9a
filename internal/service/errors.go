package service

import "errors"

// Common service errors
var (
	// ErrInquiryNotFound is returned when no inquiry has the requested id
	ErrInquiryNotFound = errors.New("inquiry not found")

	// ErrInvalidCredentials is returned when the login email or password is wrong
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when a token is missing, invalid or expired
	ErrUnauthorized = errors.New("unauthorized")
)
