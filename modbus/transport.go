package modbus

// Transport abstracts the wire layer of a Modbus connection: framing, PDU
// encoding/decoding, and per-request IO deadlines. The client packages only
// coordinate on top of it.
//
// A Transport is not required to be safe for concurrent use; the client
// serializes every call.
type Transport interface {
	// Connect establishes the underlying link. The implementation bounds the
	// attempt with its own timeout.
	Connect() error

	// Close releases the underlying link. It must be safe to call before a
	// successful Connect and more than once.
	Close() error

	// ReadHoldingRegisters reads quantity holding registers starting at
	// address (function code 0x03) and returns the raw big-endian register
	// payload.
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)

	// WriteMultipleRegisters writes quantity registers starting at address
	// (function code 0x10). values is the raw big-endian register payload.
	WriteMultipleRegisters(address, quantity uint16, values []byte) ([]byte, error)
}
