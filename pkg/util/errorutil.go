package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors. The wire shape is
// {"error": Code, "error_description": Description}.
type DomainError struct {
	Code        string
	Description string
	HTTPStatus  int
	Err         error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Description, e.Err)
	}
	return e.Description
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, description string, status int) *DomainError {
	return &DomainError{Code: code, Description: description, HTTPStatus: status}
}

func NewValidationError(description string) error {
	return NewDomainError("validation_failed", description, http.StatusBadRequest)
}

func NewNotFound(resource string) error {
	return NewDomainError(resource+"_not_found", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewUnauthorized(description string) error {
	return NewDomainError("unauthorized", description, http.StatusUnauthorized)
}

func NewForbidden(description string) error {
	return NewDomainError("forbidden", description, http.StatusForbidden)
}

func NewConflict(description string) error {
	return NewDomainError("conflict", description, http.StatusConflict)
}

// NewInvalidStatus signals an illegal state transition attempt.
func NewInvalidStatus(description string) error {
	return NewDomainError("invalid_status", description, http.StatusConflict)
}

// NewGatewayError wraps a payment-gateway failure. No automatic retry; the
// caller must re-initiate.
func NewGatewayError(err error) error {
	return &DomainError{
		Code:        "gateway_error",
		Description: "payment gateway request failed",
		HTTPStatus:  http.StatusBadGateway,
		Err:         err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:        "internal_error",
		Description: "internal server error",
		HTTPStatus:  http.StatusInternalServerError,
		Err:         err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{
			Code:        "resource_not_found",
			Description: "resource not found",
			HTTPStatus:  http.StatusNotFound,
		}
	}
	return &DomainError{
		Code:        "internal_error",
		Description: "internal server error",
		HTTPStatus:  http.StatusInternalServerError,
		Err:         err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
