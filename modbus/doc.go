// Package modbus provides the protocol-core building blocks shared by the
// go-modbus client packages: the error taxonomy, the connection state manager,
// the transport abstraction, and the register codec with its protocol limits.
//
// Error Taxonomy:
// Failures surface as exactly two externally visible kinds:
//   - ConnectionError: the link to the device could not be established. It is
//     raised by the one-shot connect attempt and carries the target address.
//   - RequestTimeoutError: an individual exchange did not complete, either
//     because it timed out, the transport reported a connection-level failure,
//     or the link was never ready.
//
// Any other error (for example a Modbus exception response decoded by the
// transport) propagates unchanged, preserving the lower-level diagnostic.
//
// Connection State:
// A client moves through the states Unconnected -> Connecting ->
// {Connected | Failed}, and Connected -> Closed on explicit close. The
// ConnStateMgr tracks the current state, records the connect resolution, and
// releases every waiter with the same outcome. A failed connect attempt is
// terminal; there is no implicit reconnect loop.
//
// Transport:
// The Transport interface captures the connect/close/send-request surface of
// the wire layer. TCP framing, PDU encoding, and per-request IO deadlines are
// the transport's concern, not this package's.
package modbus
