package serverutils

import "github.com/gofiber/fiber/v2"

// AppError carries the HTTP status a handler wants for err.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message, nil)
}

func NotFound(message string, err error) *AppError {
	return NewAppError(fiber.StatusNotFound, message, err)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(fiber.StatusConflict, message, err)
}
