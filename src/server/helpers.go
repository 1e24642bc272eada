package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"market-simulator/src/helpers"
	"market-simulator/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case helpers.IsInvalidArgument(err):
		return http.StatusBadRequest
	case helpers.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error body. Only unexpected errors reach the
// error handler.
func (s *APIServer) fail(c *gin.Context, err error, op string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Errors.Handle(err, op)
	}
	c.AbortWithStatusJSON(status, models.MErrorResult{Type: models.StateError, Message: err.Error()})
}

func (s *APIServer) badRequest(c *gin.Context, err error) {
	s.fail(c, helpers.NewInvalidArgument("invalid request body: %v", err), "bind")
}

// -----------------------------------------------------------------------------

// splitSymbols parses a comma separated list, dropping blanks.
func splitSymbols(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, helpers.NewInvalidArgument("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}

// -----------------------------------------------------------------------------

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
