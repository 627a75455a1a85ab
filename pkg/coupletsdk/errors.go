package coupletsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/couplet/pkg/validatex"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeValidation        = "validation_error"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeExpired           = "expired"
	ErrorCodeDuplicateEmail    = "duplicate_email"
	ErrorCodeWeakCredential    = "weak_credential"
	ErrorCodeInvalidCredential = "invalid_credential"
	ErrorCodeAlreadyPaired     = "already_paired"
	ErrorCodeSelfPairing       = "self_pairing"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeTooLarge          = "payload_too_large"
	ErrorCodeUnsupportedMedia  = "unsupported_media_type"
	ErrorCodeRateLimited       = "rate_limit_exceeded"
	ErrorCodeServerError       = "server_error"
)

var (
	// ErrRemote wraps every failure to reach the server or get a usable
	// answer from it: transport errors, 5xx responses and undecodable bodies.
	ErrRemote = errors.New("coupletsdk: remote error")

	// ErrConsistencyTimeout is returned by AwaitProfile when the profile
	// does not become visible before the retry budget runs out.
	ErrConsistencyTimeout = errors.New("coupletsdk: timed out waiting for profile")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Details     map[string]string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%s (%d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError by Code, so the predefined values below work
// with errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// Unwrap reports server failures as ErrRemote.
func (e *APIError) Unwrap() error {
	if e.StatusCode >= http.StatusInternalServerError {
		return ErrRemote
	}
	return nil
}

// Predefined errors for errors.Is. Only Code is compared.
var (
	ErrValidation        = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeValidation}
	ErrNotFound          = &APIError{StatusCode: http.StatusNotFound, Code: ErrorCodeNotFound}
	ErrExpired           = &APIError{StatusCode: http.StatusGone, Code: ErrorCodeExpired}
	ErrDuplicateEmail    = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeDuplicateEmail}
	ErrWeakCredential    = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeWeakCredential}
	ErrInvalidCredential = &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeInvalidCredential}
	ErrAlreadyPaired     = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeAlreadyPaired}
	ErrSelfPairing       = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeSelfPairing}
	ErrInvalidToken      = &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeInvalidToken}
	ErrRateLimited       = &APIError{StatusCode: http.StatusTooManyRequests, Code: ErrorCodeRateLimited}
)

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: unexpected status %d", ErrRemote, resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        er.Error,
		Description: er.ErrorDescription,
		Details:     er.Details,
	}
}

// ValidationError reports input rejected on the client before any request
// was sent. It matches ErrValidation.
type ValidationError struct {
	Fields validatex.FieldErrors
}

func (e *ValidationError) Error() string { return e.Fields.Error() }

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == ErrorCodeValidation
}

// asValidationError lifts validatex failures into *ValidationError.
func asValidationError(err error) error {
	var fe validatex.FieldErrors
	if errors.As(err, &fe) {
		return &ValidationError{Fields: fe}
	}
	return err
}
