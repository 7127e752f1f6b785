package modbus

import (
	"context"
	"sync"
	"sync/atomic"
)

// ConnState represents the lifecycle stage of a client connection.
type ConnState uint32

// Client connection states. A connection starts in UnconnectedState, moves to
// ConnectingState when the connect attempt begins, and resolves exactly once
// to either ConnectedState or FailedState. ClosedState is entered on explicit
// close from any state.
const (
	// UnconnectedState indicates that the connect attempt has not started yet.
	UnconnectedState ConnState = iota
	// ConnectingState indicates that the connect attempt is in flight.
	ConnectingState
	// ConnectedState indicates that the transport link is established.
	ConnectedState
	// FailedState indicates that the connect attempt failed. It is terminal;
	// there is no implicit retry.
	FailedState
	// ClosedState indicates that the client has been closed.
	ClosedState
)

// IsConnected returns if the current state is connected.
func (cs ConnState) IsConnected() bool { return cs == ConnectedState }

// IsFailed returns if the current state is failed.
func (cs ConnState) IsFailed() bool { return cs == FailedState }

// IsClosed returns if the current state is closed.
func (cs ConnState) IsClosed() bool { return cs == ClosedState }

// IsResolved returns if the connect attempt has resolved, successfully or not.
// ClosedState counts as resolved so that waiters are released on close.
func (cs ConnState) IsResolved() bool {
	return cs == ConnectedState || cs == FailedState || cs == ClosedState
}

// String returns string representation of the current state.
func (cs ConnState) String() string {
	switch cs {
	case UnconnectedState:
		return "unconnected"
	case ConnectingState:
		return "connecting"
	case ConnectedState:
		return "connected"
	case FailedState:
		return "failed"
	case ClosedState:
		return "closed"
	default:
		return "unknown"
	}
}

// ConnStateChangeHandler is a function type that represents a handler for
// connection state changes.
//
// Note: the handler is invoked while the state manager's lock is held. Take
// care with long-running implementations.
type ConnStateChangeHandler func(prevState ConnState, newState ConnState)

// ConnStateMgr tracks the connection state of one client and records the
// outcome of its single connect attempt.
//
// State transitions are safe for concurrent use. Every goroutine blocked in
// WaitResolved is released with the same resolution: nil after a successful
// connect (or a close), or the recorded connect failure.
type ConnStateMgr struct {
	mu         sync.Mutex
	cond       *sync.Cond
	state      atomic.Uint32
	resolveErr error // connect failure, set before the transition to FailedState
	handlers   []ConnStateChangeHandler
}

// NewConnStateMgr creates a new ConnStateMgr initialized to UnconnectedState.
//
// It accepts optional ConnStateChangeHandler functions that will be invoked
// when the connection state changes.
func NewConnStateMgr(handlers ...ConnStateChangeHandler) *ConnStateMgr {
	mgr := &ConnStateMgr{
		handlers: append([]ConnStateChangeHandler(nil), handlers...),
	}
	mgr.state.Store(uint32(UnconnectedState))
	mgr.cond = sync.NewCond(&mgr.mu)

	return mgr
}

// State returns the current connection state.
func (cs *ConnStateMgr) State() ConnState {
	return ConnState(cs.state.Load())
}

// AddHandler adds one or more ConnStateChangeHandler functions to be invoked
// on state changes.
func (cs *ConnStateMgr) AddHandler(handlers ...ConnStateChangeHandler) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.handlers = append(cs.handlers, handlers...)
}

// ToConnecting transitions the connection state to ConnectingState.
//
// This transition is only allowed from UnconnectedState.
// Returns nil on success, or ErrInvalidTransition otherwise.
func (cs *ConnStateMgr) ToConnecting() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	curState := cs.State()
	if curState != UnconnectedState {
		return ErrInvalidTransition
	}

	cs.setState(ConnectingState)
	cs.invokeHandlers(curState, ConnectingState)

	return nil
}

// ToConnected transitions the connection state to ConnectedState, resolving
// the connect attempt successfully and releasing every waiter.
//
// This transition is only allowed from ConnectingState.
// Returns nil on success, or ErrInvalidTransition otherwise.
func (cs *ConnStateMgr) ToConnected() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	curState := cs.State()
	if curState != ConnectingState {
		return ErrInvalidTransition
	}

	cs.setState(ConnectedState)
	cs.invokeHandlers(curState, ConnectedState)

	return nil
}

// Fail transitions the connection state to FailedState and records err as the
// connect resolution. Every current and future WaitResolved caller observes
// the same err.
//
// This transition is only allowed from ConnectingState.
// Returns nil on success, or ErrInvalidTransition otherwise.
func (cs *ConnStateMgr) Fail(err error) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	curState := cs.State()
	if curState != ConnectingState {
		return ErrInvalidTransition
	}

	cs.resolveErr = err
	cs.setState(FailedState)
	cs.invokeHandlers(curState, FailedState)

	return nil
}

// ToClosed transitions the connection state to ClosedState.
// This transition is allowed from any state and is a no-op when the state is
// already closed. Waiters blocked on an unresolved connect are released.
func (cs *ConnStateMgr) ToClosed() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	curState := cs.State()
	if curState == ClosedState {
		return
	}

	cs.setState(ClosedState)
	cs.invokeHandlers(curState, ClosedState)
}

// WaitResolved blocks until the connect attempt has resolved or the context
// is done.
//
// It returns the recorded connect failure if the attempt failed, nil if the
// attempt succeeded or the client was closed, or the context error if ctx is
// canceled first. A resolved state returns immediately without waiting.
func (cs *ConnStateMgr) WaitResolved(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	stopFunc := context.AfterFunc(ctx, func() {
		cs.cond.Broadcast()
	})
	defer stopFunc()

	for !cs.State().IsResolved() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			cs.cond.Wait()
		}
	}

	return cs.resolveErr
}

// setState atomically sets the current state to newState. It also broadcasts
// a signal to any waiting goroutines. The caller must hold cs.mu.
func (cs *ConnStateMgr) setState(newState ConnState) {
	cs.state.Store(uint32(newState))
	cs.cond.Broadcast()
}

// invokeHandlers invokes all registered ConnStateChangeHandler functions with
// the previous and new states. The caller must hold cs.mu.
func (cs *ConnStateMgr) invokeHandlers(prevState ConnState, newState ConnState) {
	for _, handler := range cs.handlers {
		if handler != nil {
			handler(prevState, newState)
		}
	}
}
