package modbus

// Protocol limits for register operations. A Modbus message payload is capped
// at 250 bytes, which bounds a single read to 125 16-bit registers. The chunk
// size used when splitting oversized reads keeps one register of headroom
// below that ceiling; the headroom is conservative, not a protocol
// requirement, and is kept as-is.
const (
	// MaxPayloadBytes is the Modbus message payload ceiling.
	MaxPayloadBytes = 250

	// MaxReadRegisters is the largest register count a single read holding
	// registers request may carry.
	MaxReadRegisters = 125

	// MaxWriteRegisters is the largest register count a single write multiple
	// registers request may carry.
	MaxWriteRegisters = 123

	// ChunkRegisters is the register count per message used when an oversized
	// read is split into multiple requests.
	ChunkRegisters = 124
)

// PackRegisters encodes register values into the big-endian byte payload the
// wire layer expects.
func PackRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}

	return out
}

// UnpackRegisters decodes a big-endian register payload into register values.
// A trailing odd byte is ignored.
func UnpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}

	return out
}

// AppendRegisters decodes a big-endian register payload and appends the
// values to dst, returning the extended slice.
func AppendRegisters(dst []uint16, data []byte) []uint16 {
	n := len(data) / 2
	for i := 0; i < n; i++ {
		dst = append(dst, uint16(data[2*i])<<8|uint16(data[2*i+1]))
	}

	return dst
}
