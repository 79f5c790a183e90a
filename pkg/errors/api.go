package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents the request payload validation error.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

var (
	// ErrInvalidToken is returned when the api request token is invalid.
	ErrInvalidToken = New("Invalid or missing token")

	// ErrUnauthorized is returned when the user is not authorized.
	ErrUnauthorized = New("Unauthorized")

	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New("Not Found")

	// ErrInvalidDriver is returned when SCM driver is not defined
	ErrInvalidDriver = New("Invalid Git SCM driver")

	// ErrInvalidLoggerInstance is returned when logger instance is not supported.
	ErrInvalidLoggerInstance = New("Invalid logger instance")

	// ErrInvalidJWTToken is returned when the jwt token is invalid.
	ErrInvalidJWTToken = New("Invalid JWT token")

	// ErrMissingJWTSecret is returned when the api is started without a jwt secret.
	ErrMissingJWTSecret = New("Missing JWT secret")

	// ErrInvalidAuthHeader is returned when the Authorization header is malformed.
	ErrInvalidAuthHeader = New("Invalid Authorization header")

	// ErrMissingAuthToken is returned when a request carries no bearer token.
	ErrMissingAuthToken = New("Missing auth token")

	// ErrExpiredToken is returned when the jwt token has expired or is not yet valid.
	ErrExpiredToken = New("Token expired")

	// ErrMissingJTI is returned when the jwt token has no jti claim.
	ErrMissingJTI = New("Missing jti claim")

	// ErrMissingSubject is returned when the jwt token has no sub claim.
	ErrMissingSubject = New("Missing sub claim")

	// ErrInvalidSigningAlgorithm is returned when the jwt token is signed with an unexpected algorithm.
	ErrInvalidSigningAlgorithm = New("Invalid signing algorithm")

	// ErrFailedTokenCreation is returned when a jwt token cannot be signed.
	ErrFailedTokenCreation = New("Failed to create token")

	// ErrMarshalJSON is returned when json marshalling fails.
	ErrMarshalJSON = New("Failed to marshal JSON")

	// ErrUnMarshalJSON is returned when json unmarshalling fails.
	ErrUnMarshalJSON = New("Failed to unmarshal JSON")
)

// MissingInReqErr is a error function corresponding to missing request entities.
func MissingInReqErr(field string) error {
	return New(fmt.Sprintf("Missing %s in request body.", field))
}

// EntityNotFoundErr is a error function corresponding to missing entities.
func EntityNotFoundErr(entity, container string) error {
	return New(fmt.Sprintf("%s not found for given %s.", entity, container))
}

// ValidationErr is a error function corresponding to invalid request payloads.
func ValidationErr(err error) interface{} {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return validationErr(verr)
	}
	return New(err.Error())
}

func validationErr(verr validator.ValidationErrors) []ValidationError {
	errs := []ValidationError{}
	for _, f := range verr {
		err := f.ActualTag()
		if f.Param() != "" {
			err = fmt.Sprintf("%s=%s", err, f.Param())
		}
		errs = append(errs, ValidationError{Field: f.Field(), Reason: err})
	}
	return errs
}
