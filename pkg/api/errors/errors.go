package errors

import (
	"fmt"
	"net/http"
)

type ErrorID int

const (
	UnknownErrorID ErrorID = iota
	InvalidJSONErrorID
	ProgramTooLargeErrorID
	InvalidCanvasSizeErrorID
	EmptyRequestErrorID
	TooManyRequestsErrorID
)

// ApiError is an error that is sent to the client as JSON. Implementations
// MUST be serializable to JSON.
type ApiError interface {
	error
	GetID() ErrorID
	GetHttpCode() int
}

type genericError struct {
	ID       ErrorID `json:"error"`
	HttpCode int     `json:"-"`
	Message  string  `json:"message"`
}

func (e *genericError) Error() string {
	return e.Message
}

func (e *genericError) GetID() ErrorID {
	return e.ID
}

func (e *genericError) GetHttpCode() int {
	return e.HttpCode
}

type requestError struct {
	genericError
}

type (
	InvalidJSONError       requestError
	ProgramTooLargeError   requestError
	InvalidCanvasSizeError requestError
	EmptyRequestError      requestError
	TooManyRequestsError   requestError
)

var EmptyRequest = &EmptyRequestError{
	genericError: genericError{
		ID:       EmptyRequestErrorID,
		HttpCode: http.StatusBadRequest,
		Message:  "Request contains nothing to execute",
	},
}

var TooManyRequests = &TooManyRequestsError{
	genericError: genericError{
		ID:       TooManyRequestsErrorID,
		HttpCode: http.StatusTooManyRequests,
		Message:  "Too many requests, slow down",
	},
}

func NewInvalidJSONError(err error) *InvalidJSONError {
	return &InvalidJSONError{
		genericError: genericError{
			ID:       InvalidJSONErrorID,
			HttpCode: http.StatusBadRequest,
			Message:  fmt.Sprintf("Failed to parse request body: %v", err),
		},
	}
}

func NewProgramTooLargeError(limit int64) *ProgramTooLargeError {
	return &ProgramTooLargeError{
		genericError: genericError{
			ID:       ProgramTooLargeErrorID,
			HttpCode: http.StatusRequestEntityTooLarge,
			Message:  fmt.Sprintf("Request body is larger than %d bytes", limit),
		},
	}
}

func NewInvalidCanvasSizeError(width, height, limit int) *InvalidCanvasSizeError {
	return &InvalidCanvasSizeError{
		genericError: genericError{
			ID:       InvalidCanvasSizeErrorID,
			HttpCode: http.StatusBadRequest,
			Message:  fmt.Sprintf("Canvas size %dx%d is invalid: sides must be between 0 and %d", width, height, limit),
		},
	}
}

// UnknownError hides an internal error from the client.
type UnknownError struct {
	genericError
	inner error
}

func NewUnknownError(inner error) *UnknownError {
	return &UnknownError{
		genericError: genericError{
			ID:       UnknownErrorID,
			HttpCode: http.StatusInternalServerError,
			Message:  "Error is unknown",
		},
		inner: inner,
	}
}

func (u *UnknownError) Unwrap() error {
	return u.inner
}
