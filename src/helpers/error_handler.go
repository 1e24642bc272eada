package helpers

import (
	"errors"
	"fmt"
	"market-simulator/src/logger"
	"sync"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type MarketSimError struct {
	Message string
	Cause   error
}

func (e *MarketSimError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MarketSimError) Unwrap() error {
	return e.Cause
}

// Distinct error kinds for errors.As checks at the transport edges
type InvalidArgumentError struct{ MarketSimError }
type NotFoundError struct{ MarketSimError }
type ConfigurationError struct{ MarketSimError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// NewInvalidArgument reports a caller contract violation.
func NewInvalidArgument(format string, args ...interface{}) error {
	return &InvalidArgumentError{MarketSimError{Message: fmt.Sprintf(format, args...)}}
}

// NewNotFound reports a lookup on something that does not exist.
func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{MarketSimError{Message: fmt.Sprintf(format, args...)}}
}

// NewConfigurationError wraps a config load or validation failure.
func NewConfigurationError(message string, cause error) error {
	return &ConfigurationError{MarketSimError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

// ErrorHandler logs and counts errors raised by background loops.
type ErrorHandler struct {
	Logger     *logger.Logger
	errorCount int
	mu         sync.Mutex
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: log}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.errorCount++
	e.mu.Unlock()
	e.Logger.Error("Error in %s: %v", context, err)
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ErrorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errorCount
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.mu.Lock()
	e.errorCount = 0
	e.mu.Unlock()
}
