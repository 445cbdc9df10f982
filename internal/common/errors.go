package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
	ErrValidation   = errors.New("validation failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTP error helpers
func AbortInvalidArgument(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

func AbortNotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": message})
}

func AbortInternal(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
}

func AbortInvalidArgumentf(c *gin.Context, format string, args ...interface{}) {
	AbortInvalidArgument(c, fmt.Sprintf(format, args...))
}

// AbortForError maps a service error onto the right HTTP status.
func AbortForError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		AbortNotFound(c, err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		AbortInvalidArgument(c, err.Error())
	default:
		AbortInternal(c, "internal error")
	}
}
