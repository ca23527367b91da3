// Package apperr defines the user-visible error taxonomy shared by the
// authentication service and the gateway. Every kind maps to a stable numeric
// code and an HTTP status; internal detail never crosses the API boundary.
package apperr

import (
	"errors"
	"net/http"
)

type Code int

const (
	CodeInvalidCredentials Code = iota
	CodeEmailNotVerified
	CodeUserAlreadyExists
	CodeUnauthorized
	CodeInvalidToken
	CodeForbidden
	CodeNotFound
	CodeInternal
)

// HTTPStatus maps an error kind to its HTTP status code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidCredentials, CodeEmailNotVerified, CodeUnauthorized, CodeInvalidToken:
		return http.StatusUnauthorized
	case CodeUserAlreadyExists:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (c Code) String() string {
	switch c {
	case CodeInvalidCredentials:
		return "Invalid_credentials"
	case CodeEmailNotVerified:
		return "Email_not_verified"
	case CodeUserAlreadyExists:
		return "User_already_exists"
	case CodeUnauthorized:
		return "Unauthorized"
	case CodeInvalidToken:
		return "Invalid_token"
	case CodeForbidden:
		return "Forbidden"
	case CodeNotFound:
		return "Resource_not_found"
	default:
		return "Internal_server_error"
	}
}

// Error is a domain failure carrying its taxonomy kind.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the taxonomy kind from err. Errors outside the taxonomy
// (store failures, transport errors) fold into CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given kind.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
