/*
Package errs provides the application error type and its error codes.

This file defines CustomError, which carries a business code, the message shown
to clients, and an HTTP status.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"relaychat/internal/pkg/logx"
)

// CustomError is the error type returned by the chat core and the HTTP layer.
type CustomError struct {
	// Code is the business error code (see the constants in error_codes.go).
	Code int

	// Message is the client-facing description. Websocket acks carry it verbatim.
	Message string

	// Status is the HTTP status used when the error is written as an HTTP response.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a known code.
// details are printf arguments for messages containing verbs; for ErrUnknown the
// first detail, when it is an error, is logged instead. Unknown codes fall back
// to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	template, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("error code %d is not registered", code),
			"Unknown error code requested",
			"requested_code", code,
		)
		template = errorMap[ErrUnknown]
	}

	customErr := template

	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	switch {
	case customErr.Code == ErrUnknown && len(details) > 0:
		if originalErr, ok := details[0].(error); ok {
			logx.Error(originalErr, "Handling ErrUnknown with underlying error")
		}
	case len(details) > 0:
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn("Details provided for an error without format verbs, ignoring them", "code", code)
		}
	}

	return &customErr
}
