package modbustcp

import (
	"time"

	gomodbus "github.com/goburrow/modbus"

	"github.com/arloliu/go-modbus/modbus"
)

// tcpTransport adapts the goburrow Modbus TCP implementation to the
// modbus.Transport interface. Framing, PDU encoding, and the per-request IO
// deadline are the handler's concern.
type tcpTransport struct {
	handler *gomodbus.TCPClientHandler
	client  gomodbus.Client
}

var _ modbus.Transport = (*tcpTransport)(nil)

func newTCPTransport(address string, unitID uint8, timeout time.Duration) *tcpTransport {
	handler := gomodbus.NewTCPClientHandler(address)
	handler.Timeout = timeout
	handler.SlaveId = unitID

	return &tcpTransport{
		handler: handler,
		client:  gomodbus.NewClient(handler),
	}
}

func (t *tcpTransport) Connect() error {
	return t.handler.Connect()
}

// Close is safe to call before Connect succeeded and more than once.
func (t *tcpTransport) Close() error {
	return t.handler.Close()
}

func (t *tcpTransport) ReadHoldingRegisters(address, quantity uint16) ([]byte, error) {
	return t.client.ReadHoldingRegisters(address, quantity)
}

func (t *tcpTransport) WriteMultipleRegisters(address, quantity uint16, values []byte) ([]byte, error) {
	return t.client.WriteMultipleRegisters(address, quantity, values)
}
