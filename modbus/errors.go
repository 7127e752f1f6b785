package modbus

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNil indicates that a nil client configuration was provided.
	ErrConfigNil = errors.New("client config is nil")

	// ErrConnectTimeout indicates that the connect attempt did not finish
	// within the configured timeout.
	ErrConnectTimeout = errors.New("connect timeout")

	// ErrNotConnected indicates that the transport link is not ready.
	ErrNotConnected = errors.New("not connected to device")

	// ErrInvalidQuantity indicates a zero register quantity, which no Modbus
	// function can express.
	ErrInvalidQuantity = errors.New("register quantity must be at least 1")

	// ErrInvalidTransition is returned when an attempt is made to transition
	// the connection state to an invalid state.
	ErrInvalidTransition = errors.New("invalid connection state transition")
)

// ConnectionError reports that the link to the device could not be
// established. It is recorded once by the failed connect attempt and returned
// to every caller that subsequently issues a request.
type ConnectionError struct {
	// Addr is the target device address.
	Addr string
	// Err is the underlying dial or timeout failure.
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not connect to %q", e.Addr)
	}

	return fmt.Sprintf("could not connect to %q: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RequestTimeoutError reports that a single exchange did not complete: the
// request timed out, the transport raised a connection-level failure, or the
// link was not ready. From the caller's perspective these are identical,
// the device is not reachable right now.
type RequestTimeoutError struct {
	// Err is the underlying transport failure.
	Err error
}

func (e *RequestTimeoutError) Error() string {
	if e.Err == nil {
		return "request timed out, not connected to device"
	}

	return fmt.Sprintf("request timed out, not connected to device: %v", e.Err)
}

func (e *RequestTimeoutError) Unwrap() error { return e.Err }
