package errors

import (
	"fmt"

	sterrors "errors"
)

var (
	ErrEndpointNameRequired = sterrors.New("slapulse: endpoint name is required")
	ErrSLARequired          = sterrors.New("slapulse: endpoint SLA duration is required")
	ErrSendOnlyEndpoint     = sterrors.New("slapulse: SLA monitoring is not supported on send-only endpoints")
	ErrBusRequired          = sterrors.New("slapulse: event bus is required")
	ErrLoggerRequired       = sterrors.New("slapulse: logger is required")
	ErrBehaviorRequired     = sterrors.New("slapulse: pipeline behavior cannot be nil")
	ErrMonitorStarted       = sterrors.New("slapulse: monitor is already started")
)

// ConfigValidationError marks an error as a fatal configuration problem that
// must abort endpoint startup before any resource is acquired.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}

// NewConfigValidationError wraps err as a ConfigValidationError. A nil err
// returns nil.
func NewConfigValidationError(err error) error {
	if err == nil {
		return nil
	}
	return ConfigValidationError{Err: err}
}
