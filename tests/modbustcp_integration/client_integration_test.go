// Package modbustcpintegration contains integration tests for the modbustcp
// package that exercise the full client lifecycle over real TCP, including
// the goburrow-backed default transport.
//
// The tests run an in-process Modbus TCP responder that answers read holding
// registers (0x03) with a deterministic pattern (register a reads as value a)
// and acknowledges write multiple registers (0x10).
package modbustcpintegration

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-modbus/modbus"
	"github.com/arloliu/go-modbus/modbustcp"
)

// serveModbus answers Modbus TCP requests on conn until it closes.
func serveModbus(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	header := make([]byte, 7)
	for {
		if _, err := io.ReadFull(conn, header); err != nil {
			return
		}

		tid := binary.BigEndian.Uint16(header[0:2])
		length := binary.BigEndian.Uint16(header[4:6])
		uid := header[6]

		if length < 2 {
			return
		}
		pdu := make([]byte, length-1)
		if _, err := io.ReadFull(conn, pdu); err != nil {
			return
		}

		var resp []byte
		switch pdu[0] {
		case 0x03: // read holding registers
			addr := binary.BigEndian.Uint16(pdu[1:3])
			qty := binary.BigEndian.Uint16(pdu[3:5])

			resp = make([]byte, 2+2*qty)
			resp[0] = 0x03
			resp[1] = byte(2 * qty)
			for i := uint16(0); i < qty; i++ {
				binary.BigEndian.PutUint16(resp[2+2*i:], addr+i)
			}

		case 0x10: // write multiple registers
			resp = []byte{0x10, pdu[1], pdu[2], pdu[3], pdu[4]}

		default: // illegal function
			resp = []byte{pdu[0] | 0x80, 0x01}
		}

		out := make([]byte, 7+len(resp))
		binary.BigEndian.PutUint16(out[0:2], tid)
		binary.BigEndian.PutUint16(out[2:4], 0)
		binary.BigEndian.PutUint16(out[4:6], uint16(1+len(resp)))
		out[6] = uid
		copy(out[7:], resp)

		if _, err := conn.Write(out); err != nil {
			return
		}
	}
}

// startResponder starts a Modbus TCP responder and returns its address.
func startResponder(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveModbus(conn)
		}
	}()

	return ln.Addr().String()
}

func TestClient_OverTCP(t *testing.T) {
	require := require.New(t)

	addr := startResponder(t)
	ctx := context.Background()

	client, err := modbustcp.NewClient(ctx, addr, modbustcp.WithTimeout(time.Second))
	require.NoError(err)
	defer func() { _ = client.Close() }()

	t.Run("single read", func(t *testing.T) {
		regs, err := client.ReadRegisters(ctx, 5, 100)
		require.NoError(err)
		require.Len(regs, 100)
		for i, r := range regs {
			require.Equal(uint16(5+i), r)
		}
	})

	t.Run("chunked read", func(t *testing.T) {
		regs, err := client.ReadRegisters(ctx, 0, 300)
		require.NoError(err)
		require.Len(regs, 300)
		for i, r := range regs {
			require.Equal(uint16(i), r)
		}
	})

	t.Run("write", func(t *testing.T) {
		require.NoError(client.WriteRegisters(ctx, 40, []uint16{1, 2, 3}))
	})

	t.Run("state and metrics", func(t *testing.T) {
		require.Equal(modbus.ConnectedState, client.State())
		require.GreaterOrEqual(client.Metrics().RequestCount.Load(), uint64(5))
	})
}

func TestClient_OverTCP_Scoped(t *testing.T) {
	require := require.New(t)

	addr := startResponder(t)
	ctx := context.Background()

	err := modbustcp.WithClient(ctx, addr, func(c *modbustcp.Client) error {
		regs, err := c.ReadRegisters(ctx, 10, 4)
		if err != nil {
			return err
		}
		require.Equal([]uint16{10, 11, 12, 13}, regs)

		return nil
	}, modbustcp.WithTimeout(time.Second))

	require.NoError(err)
}

func TestClient_OverTCP_ConnectRefused(t *testing.T) {
	require := require.New(t)

	// grab a port and close it again so the dial is refused
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	addr := ln.Addr().String()
	require.NoError(ln.Close())

	client, err := modbustcp.NewClient(context.Background(), addr, modbustcp.WithTimeout(500*time.Millisecond))
	require.NoError(err)
	defer func() { _ = client.Close() }()

	_, err = client.ReadRegisters(context.Background(), 0, 10)

	var connErr *modbus.ConnectionError
	require.ErrorAs(err, &connErr)
	require.Equal(addr, connErr.Addr)
}
