package errors

import (
	"fmt"
	"net/http"
)

// AppError define la estructura estándar para errores de la aplicación.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"` // no se serializa, usado para el header
	Err        error  `json:"-"` // causa original, útil para logs, no se expone
}

// Error implementa la interfaz error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap permite acceder al error original.
func (e *AppError) Unwrap() error {
	return e.Err
}

// FromError intenta convertir un error genérico en un AppError.
// Si no es un AppError, devuelve un error interno genérico conservando la causa.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail agrega detalles al error.
// Devuelve una COPIA para no mutar las variables globales base.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause agrega el error original (causa). Devuelve una COPIA.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// =================================================================================
// LISTA DE ERRORES PREDEFINIDOS
// =================================================================================

var (
	ErrBadRequest = &AppError{
		Code: "bad_request", Message: "Bad request", HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidJSON = &AppError{
		Code: "invalid_json", Message: "Invalid JSON format", HTTPStatus: http.StatusBadRequest,
	}
	ErrValidation = &AppError{
		Code: "validation_failed", Message: "Validation failed", HTTPStatus: http.StatusBadRequest,
	}
	ErrForbidden = &AppError{
		Code: "forbidden", Message: "Forbidden", HTTPStatus: http.StatusForbidden,
	}
	ErrMethodNotAllowed = &AppError{
		Code: "method_not_allowed", Message: "Method not allowed", HTTPStatus: http.StatusMethodNotAllowed,
	}
	ErrTooManyRequests = &AppError{
		Code: "too_many_requests", Message: "Too many requests", HTTPStatus: http.StatusTooManyRequests,
	}
	ErrInternalServerError = &AppError{
		Code: "internal_error", Message: "Internal server error", HTTPStatus: http.StatusInternalServerError,
	}
	ErrServiceUnavailable = &AppError{
		Code: "service_unavailable", Message: "Service unavailable", HTTPStatus: http.StatusServiceUnavailable,
	}
)
