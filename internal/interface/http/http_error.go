package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/hairmatch/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps an AppError code onto its response status.
func fromDomainError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status, code = http.StatusBadRequest, apperrors.CodeInvalidInput
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		status, code = http.StatusNotFound, apperrors.CodeNotFound
	case apperrors.IsCode(err, apperrors.CodeUnauthorized):
		status, code = http.StatusUnauthorized, apperrors.CodeUnauthorized
	case apperrors.IsCode(err, apperrors.CodeStorage):
		code = apperrors.CodeStorage
	case apperrors.IsCode(err, apperrors.CodeLLM):
		code = apperrors.CodeLLM
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return NewHTTPError(status, code, "Internal server error", err)
	}
	return NewHTTPError(status, code, appErr.Message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromDomainError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
