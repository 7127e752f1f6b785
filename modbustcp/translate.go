package modbustcp

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/arloliu/go-modbus/modbus"
)

// translateError maps transport-level failures onto the stable error
// taxonomy: timeouts and connection-level failures become
// modbus.RequestTimeoutError, since from the caller's perspective both mean
// "not connected right now". Anything else, a Modbus exception response or a
// malformed-frame error, propagates unchanged so the lower-level diagnostic
// survives.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if isTimeout(err) || isConnFailure(err) {
		return &modbus.RequestTimeoutError{Err: err}
	}

	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnFailure(err error) bool {
	switch {
	case errors.Is(err, modbus.ErrNotConnected),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE):
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
