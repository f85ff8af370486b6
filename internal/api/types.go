package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus indicates the backend answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("api: unexpected status")
	// ErrInvalidBaseURL indicates the configured base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("api: invalid base URL")
)

// StatusError carries the status code of a non-2xx response.
type StatusError struct {
	Method    string
	Path      string
	Code      int
	RequestID string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s %s (request %s): unexpected status %d", e.Method, e.Path, e.RequestID, e.Code)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// NewCardholder is the request body for creating a cardholder.
type NewCardholder struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"cardholder_address"`
}

// Validate checks the fields the backend requires.
func (n NewCardholder) Validate() error {
	switch {
	case n.FirstName == "":
		return errors.New("first name is required")
	case n.LastName == "":
		return errors.New("last name is required")
	case n.Email == "":
		return errors.New("email is required")
	}
	return nil
}
