package usecase

import (
	"errors"
	"net/http"

	"github.com/xavierca1/dealflow/internal/infra/integration/crmapi"
	"github.com/xavierca1/dealflow/internal/infra/integration/supabase"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeDatabase     = "DATABASE_ERROR"
)

// DomainError is a failure the caller can act on (bad input, missing
// resource). Fields carries per-field validation failures.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is an infrastructure failure. Err is kept for logging and
// never shown to the client.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationFailed(errs []ValidationError) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: errs[0].Error(),
		Fields:  errs,
	}
}

// upstreamError classifies a CRM API failure. 4xx answers are surfaced to
// the caller with the upstream message; anything else is technical.
func upstreamError(msg string, err error) error {
	if errors.Is(err, supabase.ErrUnauthorized) {
		return &DomainError{Code: CodeUnauthorized, Message: "session expired, please sign in again"}
	}

	var se *crmapi.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden:
			return &DomainError{Code: CodeUnauthorized, Message: se.Body}
		case se.Status == http.StatusNotFound:
			return &DomainError{Code: CodeNotFound, Message: se.Body}
		case se.Status >= 400 && se.Status < 500:
			return &DomainError{Code: CodeValidation, Message: se.Body}
		}
	}
	return &TechnicalError{Code: CodeUpstream, Message: msg, Err: err}
}
