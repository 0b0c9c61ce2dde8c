package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	readingdomain "github.com/gridstream/gridstream/internal/reading/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

// ErrorHandlingMiddleware converts the last gin error into the JSON error
// envelope. Handlers report failures through AbortWithError and never write
// error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	if code, ok := validationCode(err); ok {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	// Everything else on the synchronous path is a transport fault against
	// the log or the store.
	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func validationCode(err error) (string, bool) {
	switch {
	case errors.Is(err, readingdomain.ErrInvalidSiteID):
		return "invalid_site_id", true
	case errors.Is(err, readingdomain.ErrInvalidDeviceID):
		return "invalid_device_id", true
	case errors.Is(err, readingdomain.ErrInvalidPowerReading):
		return "invalid_power_reading", true
	case errors.Is(err, readingdomain.ErrInvalidTimestamp):
		return "invalid_timestamp", true
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request", true
	default:
		return "", false
	}
}

func validationField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	default:
		return trimInvalidPrefix(code)
	}
}

func trimInvalidPrefix(code string) string {
	const prefix = "invalid_"
	if len(code) > len(prefix) && code[:len(prefix)] == prefix {
		return code[len(prefix):]
	}
	return ""
}
