package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., email already exists
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")
	ErrBusinessRule   = errors.New("business rule violated")
)

// DomainError is a dictionary entry: a human-readable message plus a
// stable kind surfaced in the error envelope. It unwraps to one of the
// sentinels above so errors.Is keeps working across layers.
type DomainError struct {
	Kind    string
	Message string
	err     error
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.err }

func NewDomainError(kind, message string, sentinel error) *DomainError {
	return &DomainError{Kind: kind, Message: message, err: sentinel}
}

var (
	ErrUserNotFound      = NewDomainError("USER_NOT_FOUND", "user not found", ErrNotFound)
	ErrPetNotFound       = NewDomainError("PET_NOT_FOUND", "pet not found", ErrNotFound)
	ErrAdoptionNotFound  = NewDomainError("ADOPTION_NOT_FOUND", "adoption not found", ErrNotFound)
	ErrPetAlreadyAdopted = NewDomainError("PET_ALREADY_ADOPTED", "pet has already been adopted", ErrBusinessRule)
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid credentials", ErrUnauthorized)
	ErrInvalidDataType    = NewDomainError("INVALID_DATA_TYPE", "parameters must be valid numbers", ErrValidation)
)

// ErrorKind extracts the dictionary kind from an error chain, if any.
func ErrorKind(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrBusinessRule) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}

	// Check for pgx specific errors (example for unique constraint)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
