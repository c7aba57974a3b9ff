package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Core-layer error taxonomy. Handlers never inspect statuses themselves;
// RespondError maps these to HTTP responses.

// ValidationError signals missing or malformed input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// NewNotFoundError builds a NotFoundError for the named entity.
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ConflictError signals a state-precondition violation, such as reviewing a
// booking that is not completed.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

// NewConflictError builds a ConflictError with a formatted reason.
func NewConflictError(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// AuthError signals a missing, invalid, or expired token. Code is a
// machine-readable reason ("missing_token", "invalid_token", "token_expired",
// "token_revoked").
type AuthError struct {
	Code   string
	Reason string
}

func (e *AuthError) Error() string {
	return "auth error: " + e.Reason
}

// NewAuthError builds an AuthError with the given machine-readable code.
func NewAuthError(code, reason string) error {
	return &AuthError{Code: code, Reason: reason}
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err wraps a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// RespondError writes the JSON error response matching the core error type.
// Unrecognized errors become a generic 500; the details are logged, not leaked.
func RespondError(c *gin.Context, err error) {
	var (
		ve *ValidationError
		nf *NotFoundError
		ce *ConflictError
		ae *AuthError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ve.Reason})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": nf.Error()})
	case errors.As(err, &ce):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ce.Reason})
	case errors.As(err, &ae):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": ae.Reason, "reason": ae.Code})
	default:
		GetLogger().Error("unhandled core error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error."})
	}
}
