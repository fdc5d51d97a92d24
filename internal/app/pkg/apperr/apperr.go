package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error доменная ошибка с HTTP-статусом, создается в точке обнаружения
// и доходит до границы без изменений.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: http.StatusForbidden, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func Internal(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// From приводит произвольную ошибку к доменной; все неожиданное становится Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// IsCode проверка статуса ошибки, удобна в тестах.
func IsCode(err error, code int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
