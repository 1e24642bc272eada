package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"market-simulator/src/logger"
)

func TestErrorKinds(t *testing.T) {
	invalid := NewInvalidArgument("points must be positive, got %d", 0)
	notFound := NewNotFound("alert %s not found", "x")
	cfgErr := NewConfigurationError("bad config", errors.New("port"))

	if !IsInvalidArgument(invalid) || IsNotFound(invalid) {
		t.Errorf("invalid argument misclassified: %v", invalid)
	}
	if !IsNotFound(notFound) || IsInvalidArgument(notFound) {
		t.Errorf("not found misclassified: %v", notFound)
	}
	if !IsConfiguration(cfgErr) {
		t.Errorf("configuration error misclassified: %v", cfgErr)
	}
	if invalid.Error() != "points must be positive, got 0" {
		t.Errorf("unexpected message %q", invalid.Error())
	}
	if cfgErr.Error() != "bad config: port" {
		t.Errorf("unexpected message %q", cfgErr.Error())
	}
}

func TestErrorKindsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("history: %w", NewInvalidArgument("bad"))
	if !IsInvalidArgument(wrapped) {
		t.Error("wrapped invalid argument should still match")
	}
	if IsInvalidArgument(errors.New("plain")) {
		t.Error("plain error should not match")
	}
}

func TestErrorHandlerCounts(t *testing.T) {
	var buf bytes.Buffer
	h := NewErrorHandler(logger.NewLoggerTo(&buf, nil, "Handler"))

	h.Handle(nil, "noop")
	h.Handle(errors.New("tick failed"), "ticker")
	h.Handle(errors.New("send failed"), "hub")

	if h.ErrorCount() != 2 {
		t.Errorf("ErrorCount = %d, want 2", h.ErrorCount())
	}
	if !strings.Contains(buf.String(), "Error in ticker: tick failed") {
		t.Errorf("missing log line, got %q", buf.String())
	}

	h.ResetErrorCount()
	if h.ErrorCount() != 0 {
		t.Errorf("ErrorCount after reset = %d", h.ErrorCount())
	}
}
