package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error wraps a user-facing message with the HTTP status it should be
// surfaced with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
	InActiveUserError      = errors.New("user is inactive")
)

// GetUniqueContraintError maps a unique-constraint violation to a friendly
// message, falling back to a generic bad request.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return New("email already in use", http.StatusBadRequest)
	case strings.Contains(msg, "telephone"), strings.Contains(msg, "phone"):
		return New("telephone already in use", http.StatusBadRequest)
	default:
		return New(msg, http.StatusBadRequest)
	}
}

// ErrorHandler is handed to the rate-limit middleware for throttled requests.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "too many requests, try again in " + time.Until(info.ResetTime).String(),
	})
}
