package modbustcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"testing"

	gomodbus "github.com/goburrow/modbus"
	"github.com/stretchr/testify/assert"

	"github.com/arloliu/go-modbus/modbus"
)

// fakeNetTimeoutError satisfies net.Error and reports a timeout, mimicking an
// IO deadline expiry inside the transport.
type fakeNetTimeoutError struct{}

func (*fakeNetTimeoutError) Error() string   { return "i/o timeout" }
func (*fakeNetTimeoutError) Timeout() bool   { return true }
func (*fakeNetTimeoutError) Temporary() bool { return true }

func TestTranslateError(t *testing.T) {
	assert := assert.New(t)

	timeoutCases := []struct {
		name string
		err  error
	}{
		{name: "context deadline", err: context.DeadlineExceeded},
		{name: "os deadline", err: os.ErrDeadlineExceeded},
		{name: "net timeout", err: &fakeNetTimeoutError{}},
		{name: "wrapped net timeout", err: fmt.Errorf("read: %w", &fakeNetTimeoutError{})},
		{name: "op error", err: &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}},
		{name: "closed connection", err: net.ErrClosed},
		{name: "eof", err: io.EOF},
		{name: "unexpected eof", err: io.ErrUnexpectedEOF},
		{name: "closed pipe", err: io.ErrClosedPipe},
		{name: "connection reset", err: syscall.ECONNRESET},
		{name: "broken pipe", err: fmt.Errorf("write: %w", syscall.EPIPE)},
		{name: "not connected", err: modbus.ErrNotConnected},
	}

	for _, tc := range timeoutCases {
		t.Run(tc.name, func(t *testing.T) {
			err := translateError(tc.err)

			var rte *modbus.RequestTimeoutError
			assert.ErrorAs(err, &rte)
			assert.ErrorIs(err, tc.err)
		})
	}

	passthroughCases := []struct {
		name string
		err  error
	}{
		{name: "modbus exception", err: &gomodbus.ModbusError{FunctionCode: 0x83, ExceptionCode: 3}},
		{name: "arbitrary error", err: errors.New("modbus: response data size does not match count")},
	}

	for _, tc := range passthroughCases {
		t.Run(tc.name, func(t *testing.T) {
			err := translateError(tc.err)
			assert.Equal(tc.err, err)

			var rte *modbus.RequestTimeoutError
			assert.False(errors.As(err, &rte))
		})
	}

	assert.NoError(translateError(nil))
}
