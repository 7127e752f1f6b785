// Package modbustcp provides an asynchronous Modbus TCP client for devices
// that process exactly one request at a time.
//
// A Client owns one logical connection to one device. Construction starts a
// single background connect attempt and returns immediately; the first
// request (and every concurrent request) awaits that attempt's resolution.
// The attempt is made exactly once per client, a failed attempt is terminal
// and every later request observes the same modbus.ConnectionError.
//
// Key Features:
//   - Request Serialization: all reads and writes pass through one
//     channel-guarded slot, so at most one protocol exchange is outstanding
//     at any instant. The device silently ignores overlapping requests, so
//     strict mutual exclusion is a correctness requirement, not a
//     convenience.
//   - Transparent Read Chunking: reads larger than the protocol's
//     per-message register limit are split into sequential chunk requests
//     and reassembled in order. The write path is deliberately not chunked.
//   - Stable Error Taxonomy: transport timeouts and connection-level
//     failures surface as modbus.RequestTimeoutError; other transport errors
//     propagate unchanged.
//
// Basic Usage:
//
//	client, err := modbustcp.NewClient(ctx, "10.0.0.5:502",
//	    modbustcp.WithTimeout(time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	regs, err := client.ReadRegisters(ctx, 0, 300) // three chunked requests
//
// Or with the scoped form, which guarantees exactly one Close on every exit
// path:
//
//	err := modbustcp.WithClient(ctx, "10.0.0.5:502", func(c *modbustcp.Client) error {
//	    return c.WriteRegisters(ctx, 40, []uint16{1, 2, 3})
//	})
//
// Serializing traffic to one physical device requires exactly one Client per
// device address; creating two clients for the same address defeats the
// at-most-one-in-flight guarantee. This is a caller constraint, not enforced
// by the package.
package modbustcp
