package modbustcp

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/arloliu/go-modbus/logger"
	"github.com/arloliu/go-modbus/modbus"
)

// DefaultPort is the IANA-assigned Modbus TCP port, used when the device
// address carries no port.
const DefaultPort = 502

// ClientConfig represents the configuration parameters for a Modbus TCP
// client.
type ClientConfig struct {
	mu sync.RWMutex

	// address is the device address in host:port form.
	address string

	// unitID is the Modbus unit (slave) identifier carried in every request.
	// Defaults to 1.
	unitID uint8

	// timeout bounds the connect attempt and is handed to the transport as
	// its per-request IO deadline. Defaults to 1 second.
	timeout time.Duration

	// logger provides a logger instance for client events and errors.
	logger logger.Logger

	// transport overrides the default goburrow-backed TCP transport. Used by
	// tests and non-TCP deployments.
	transport modbus.Transport
}

// NewClientConfig creates a new client configuration with the given device
// address and optional functional options.
//
// The address is either host:port or a bare host, in which case the Modbus
// default port 502 is used.
//
// See the documentation of the various WithXXX functions for available
// configuration options.
func NewClientConfig(address string, opts ...ClientOption) (*ClientConfig, error) {
	cfg := &ClientConfig{
		unitID:  1,
		timeout: 1 * time.Second,
		logger:  logger.GetLogger(),
	}

	if err := withAddress(address).apply(cfg); err != nil {
		return cfg, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// Address returns the device address in host:port form.
func (cfg *ClientConfig) Address() string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.address
}

// UnitID returns the Modbus unit identifier.
func (cfg *ClientConfig) UnitID() uint8 {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.unitID
}

// Timeout returns the connect and per-request timeout.
func (cfg *ClientConfig) Timeout() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.timeout
}

// Logger returns the configured logger instance.
func (cfg *ClientConfig) Logger() logger.Logger {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.logger
}

// Transport returns the configured transport override, or nil when the
// default TCP transport applies.
func (cfg *ClientConfig) Transport() modbus.Transport {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.transport
}

// ClientOption represents a functional option for configuring a ClientConfig.
type ClientOption interface {
	apply(*ClientConfig) error
}

type clientOptFunc struct {
	name      string
	applyFunc func(*ClientConfig) error
}

func (c *clientOptFunc) apply(cfg *ClientConfig) error { return c.applyFunc(cfg) }

func newClientOptFunc(name string, f func(*ClientConfig) error) *clientOptFunc {
	return &clientOptFunc{name: name, applyFunc: f}
}

// withAddress validates and normalizes the device address.
func withAddress(address string) ClientOption {
	return newClientOptFunc("withAddress", func(cfg *ClientConfig) error {
		if cfg == nil {
			return modbus.ErrConfigNil
		}

		if address == "" {
			return errors.New("device address is empty")
		}

		if _, _, err := net.SplitHostPort(address); err != nil {
			// bare host, fall back to the protocol default port
			address = net.JoinHostPort(address, strconv.Itoa(DefaultPort))
			if _, _, err := net.SplitHostPort(address); err != nil {
				return fmt.Errorf("invalid device address %q", address)
			}
		}

		cfg.address = address

		return nil
	})
}

// WithTimeout sets the timeout for the connect attempt and the per-request IO
// deadline of the transport. It should be between 1 millisecond and 120
// seconds.
//
// Defaults to 1 second.
func WithTimeout(timeout time.Duration) ClientOption {
	return newClientOptFunc("WithTimeout", func(cfg *ClientConfig) error {
		if cfg == nil {
			return modbus.ErrConfigNil
		}

		if timeout < time.Millisecond || timeout > 120*time.Second {
			return errors.New("timeout is out of range [1ms, 120s]")
		}
		cfg.timeout = timeout

		return nil
	})
}

// WithUnitID sets the Modbus unit (slave) identifier carried in every
// request.
//
// Defaults to 1.
func WithUnitID(unitID uint8) ClientOption {
	return newClientOptFunc("WithUnitID", func(cfg *ClientConfig) error {
		if cfg == nil {
			return modbus.ErrConfigNil
		}

		cfg.unitID = unitID

		return nil
	})
}

// WithLogger sets the logger instance used by the client.
//
// Defaults to the package-level default logger.
func WithLogger(l logger.Logger) ClientOption {
	return newClientOptFunc("WithLogger", func(cfg *ClientConfig) error {
		if cfg == nil {
			return modbus.ErrConfigNil
		}

		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.logger = l

		return nil
	})
}

// WithTransport overrides the default goburrow-backed TCP transport. The
// client still owns the transport lifecycle: it connects it once at
// construction and closes it on Close.
func WithTransport(t modbus.Transport) ClientOption {
	return newClientOptFunc("WithTransport", func(cfg *ClientConfig) error {
		if cfg == nil {
			return modbus.ErrConfigNil
		}

		if t == nil {
			return errors.New("transport is nil")
		}
		cfg.transport = t

		return nil
	})
}
