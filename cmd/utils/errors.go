package utils

import "net/http"

// StatusError is the single client-error kind the services raise.
// Callers distinguish failures by message text; Status only drives the
// HTTP mapping.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func NotFound(message string) error {
	return &StatusError{Status: http.StatusNotFound, Message: message}
}

func Forbidden(message string) error {
	return &StatusError{Status: http.StatusForbidden, Message: message}
}

func Conflict(message string) error {
	return &StatusError{Status: http.StatusConflict, Message: message}
}

func BadRequest(message string) error {
	return &StatusError{Status: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) error {
	return &StatusError{Status: http.StatusUnauthorized, Message: message}
}
