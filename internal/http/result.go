package httpapi

import (
	"errors"
	"net/http"

	"argynix-connect/internal/export"
	"argynix-connect/internal/schedule"
	"argynix-connect/internal/service"
	"argynix-connect/internal/store"
	"argynix-connect/internal/thingsboard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Result console response envelope
// - code: 2000 success, -1 error, 40300 permission denied, 60401 session expired
// - type: 'success' | 'error' | 'warning'
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess          = 2000
	ResultError            = -1
	ResultPermissionDenied = 40300
	// ResultTokenExpired goes out with HTTP 401.
	ResultTokenExpired = 60401
)

const permissionDeniedMessage = "Permission Denied"

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// Denied carries the platform text in result so the page can show it.
func Denied(raw string) Result[any] {
	return Result[any]{Code: ResultPermissionDenied, Type: "warning", Message: permissionDeniedMessage, Result: raw}
}

func Expired(message string) Result[any] {
	return Result[any]{Code: ResultTokenExpired, Type: "error", Message: message, Result: nil}
}

// writeError maps err onto the envelope. Only a missing session or a token
// the platform rejects changes the HTTP status.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var formErr *service.FormError
	switch {
	case errors.Is(err, store.ErrSessionNotFound), errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, Expired(err.Error()))
		return
	case thingsboard.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, Expired(err.Error()))
		return
	case thingsboard.IsPermissionDenied(err):
		c.JSON(http.StatusOK, Denied(err.Error()))
		return
	case errors.Is(err, export.ErrNoData):
		c.JSON(http.StatusOK, Fail(export.ErrNoData.Error()))
		return
	case errors.As(err, &formErr):
		c.JSON(http.StatusOK, Result[any]{Code: ResultError, Type: "error", Message: formErr.Error(), Result: formErr.Fields})
		return
	case errors.Is(err, schedule.ErrInvalid), errors.Is(err, schedule.ErrScheduleLimit),
		errors.Is(err, service.ErrScheduleNotFound), errors.Is(err, export.ErrUnknownFormat):
		c.JSON(http.StatusOK, Fail(err.Error()))
		return
	}

	logger.Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusOK, Fail(err.Error()))
}
