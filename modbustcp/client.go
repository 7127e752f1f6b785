package modbustcp

import (
	"context"
	"sync"

	"github.com/arloliu/go-modbus/internal/pool"
	"github.com/arloliu/go-modbus/logger"
	"github.com/arloliu/go-modbus/modbus"
)

// wire operation names, also used as the "op" field in debug logs.
const (
	opReadHoldingRegisters   = "read_holding_registers"
	opWriteMultipleRegisters = "write_multiple_registers"
)

// Client represents one logical connection to one Modbus TCP device.
//
// The constructor starts a single background connect attempt; every request
// awaits its resolution and then passes through a channel-guarded slot that
// admits at most one in-flight request. See the package documentation for the
// concurrency contract.
type Client struct {
	cfg       *ClientConfig
	logger    logger.Logger
	transport modbus.Transport
	stateMgr  *modbus.ConnStateMgr

	// sem admits at most one in-flight request. A channel rather than a
	// sync.Mutex so a waiter can abandon the wait when its context is done.
	sem chan struct{}

	closeOnce sync.Once
	closeErr  error

	metrics ClientMetrics
}

// NewClient creates a Client for the device at address and begins connecting
// immediately. It never blocks on the network: the connect attempt runs as a
// background goroutine bounded by the configured timeout, and its outcome is
// observed by the first request.
//
// ctx is the parent context of the connect attempt; canceling it before the
// attempt resolves fails the client.
func NewClient(ctx context.Context, address string, opts ...ClientOption) (*Client, error) {
	cfg, err := NewClientConfig(address, opts...)
	if err != nil {
		return nil, err
	}

	return NewClientWithConfig(ctx, cfg)
}

// NewClientWithConfig creates a Client from an existing configuration.
func NewClientWithConfig(ctx context.Context, cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, modbus.ErrConfigNil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	transport := cfg.Transport()
	if transport == nil {
		transport = newTCPTransport(cfg.Address(), cfg.UnitID(), cfg.Timeout())
	}

	client := &Client{
		cfg:       cfg,
		logger:    cfg.Logger().With("device", cfg.Address()),
		transport: transport,
		sem:       make(chan struct{}, 1),
	}
	client.stateMgr = modbus.NewConnStateMgr(client.connStateChanged)

	go client.connect(ctx)

	return client, nil
}

// State returns the current connection state.
func (c *Client) State() modbus.ConnState {
	return c.stateMgr.State()
}

// Metrics returns the metrics associated with the client.
func (c *Client) Metrics() *ClientMetrics {
	return &c.metrics
}

// ReadRegisters reads count holding registers starting at address and returns
// their values in address order.
//
// The protocol payload ceiling bounds a single response to 125 registers, so
// oversized reads are split into sequential requests of up to
// modbus.ChunkRegisters registers each, advancing the address by the chunk
// size each time. The chunks pass through the request slot one at a time and
// the results are concatenated in request order, so the output is
// indistinguishable from a single oversized request.
func (c *Client) ReadRegisters(ctx context.Context, address, count uint16) ([]uint16, error) {
	if count == 0 {
		return nil, modbus.ErrInvalidQuantity
	}

	c.metrics.incReadCount()
	if count > modbus.ChunkRegisters {
		c.metrics.incChunkedReadCount()
	}

	reqID := nextRequestID()
	regs := make([]uint16, 0, count)

	for count > modbus.ChunkRegisters {
		data, err := c.request(ctx, reqID, opReadHoldingRegisters, address, modbus.ChunkRegisters, nil)
		if err != nil {
			return nil, err
		}
		regs = modbus.AppendRegisters(regs, data)

		address += modbus.ChunkRegisters
		count -= modbus.ChunkRegisters
	}

	data, err := c.request(ctx, reqID, opReadHoldingRegisters, address, count, nil)
	if err != nil {
		return nil, err
	}

	return modbus.AppendRegisters(regs, data), nil
}

// WriteRegisters writes values to consecutive holding registers starting at
// address.
//
// Unlike the read path, writes are issued as a single request and are never
// chunked: staying within modbus.MaxWriteRegisters registers is the caller's
// responsibility, and an oversized write is rejected by the transport layer.
// The asymmetry is deliberate.
func (c *Client) WriteRegisters(ctx context.Context, address uint16, values []uint16) error {
	if len(values) == 0 {
		return modbus.ErrInvalidQuantity
	}

	c.metrics.incWriteCount()

	reqID := nextRequestID()
	quantity := uint16(len(values)) //nolint:gosec // oversized writes are the transport's concern

	_, err := c.request(ctx, reqID, opWriteMultipleRegisters, address, quantity, modbus.PackRegisters(values))

	return err
}

// Close releases the transport link. It is idempotent: it may be called zero,
// one, or many times, including before the connect attempt has resolved, in
// which case any goroutine still awaiting the resolution is released.
//
// The client is not reusable after Close; later requests report
// modbus.RequestTimeoutError.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.stateMgr.ToClosed()

		if err := c.transport.Close(); err != nil {
			c.closeErr = err
			c.logger.Debug("transport close reported an error", "error", err)
		}

		c.logger.Info("client closed")
	})

	return c.closeErr
}

// connect performs the client's single connect attempt. It runs as a
// background goroutine started at construction; callers await its resolution
// through the state manager, never by re-attempting the connection.
func (c *Client) connect(ctx context.Context) {
	if err := c.stateMgr.ToConnecting(); err != nil {
		// closed before the attempt started
		return
	}

	timeout := c.cfg.Timeout()
	timer := pool.GetTimer(timeout)
	defer pool.PutTimer(timer)

	done := make(chan error, 1)
	go func() {
		done <- c.transport.Connect()
	}()

	var err error
	select {
	case err = <-done:
	case <-timer.C:
		err = modbus.ErrConnectTimeout
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		_ = c.stateMgr.Fail(&modbus.ConnectionError{Addr: c.cfg.Address(), Err: err})
		return
	}

	if err := c.stateMgr.ToConnected(); err != nil {
		// closed while the dial was in flight, release the fresh link
		_ = c.transport.Close()
	}
}

// request is the sole path by which reads and writes reach the transport.
//
// It awaits the connect resolution, takes the request slot, dispatches, and
// releases the slot on every path. Transport failures are translated into the
// stable error taxonomy before propagating. There is no cancellation past the
// slot acquisition: a dispatched request runs to completion or to the
// transport's own timeout.
func (c *Client) request(ctx context.Context, reqID uint32, op string, address, quantity uint16, values []byte) ([]byte, error) {
	if err := c.stateMgr.WaitResolved(ctx); err != nil {
		return nil, err
	}
	if c.stateMgr.State().IsClosed() {
		return nil, &modbus.RequestTimeoutError{Err: modbus.ErrNotConnected}
	}

	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.release()

	c.metrics.incRequestCount()
	c.metrics.incRequestInflightCount()
	defer c.metrics.decRequestInflightCount()

	if c.logger.Level() == logger.DebugLevel {
		c.logger.Debug("dispatch request",
			"req_id", reqID, "op", op, "address", address, "quantity", quantity,
		)
	}

	var data []byte
	var err error
	switch op {
	case opReadHoldingRegisters:
		data, err = c.transport.ReadHoldingRegisters(address, quantity)
	case opWriteMultipleRegisters:
		data, err = c.transport.WriteMultipleRegisters(address, quantity, values)
	}

	if err != nil {
		c.metrics.incRequestErrCount()
		return nil, translateError(err)
	}

	return data, nil
}

// acquire takes the request slot, enforcing the half-duplex constraint. A
// caller may abandon the wait when its context is done; a request that
// already holds the slot is unaffected.
func (c *Client) acquire(ctx context.Context) error {
	select {
	case c.sem <- struct{}{}:
		return nil
	default:
	}

	select {
	case c.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) release() {
	<-c.sem
}

func (c *Client) connStateChanged(prevState, curState modbus.ConnState) {
	c.logger.Debug("connection state changed", "prev_state", prevState, "cur_state", curState)

	switch curState {
	case modbus.ConnectedState:
		c.logger.Info("connected to device")
	case modbus.FailedState:
		c.logger.Warn("connect attempt failed, client is unusable")
	default:
	}
}
