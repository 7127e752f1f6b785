package modbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRegisters(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(PackRegisters(nil))
	assert.Equal([]byte{0x12, 0x34}, PackRegisters([]uint16{0x1234}))
	assert.Equal([]byte{0x00, 0x01, 0xab, 0xcd, 0xff, 0xff},
		PackRegisters([]uint16{1, 0xabcd, 0xffff}))
}

func TestUnpackRegisters(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(UnpackRegisters(nil))
	assert.Equal([]uint16{0x1234}, UnpackRegisters([]byte{0x12, 0x34}))
	assert.Equal([]uint16{1, 0xabcd, 0xffff},
		UnpackRegisters([]byte{0x00, 0x01, 0xab, 0xcd, 0xff, 0xff}))

	// a trailing odd byte is ignored
	assert.Equal([]uint16{0x0102}, UnpackRegisters([]byte{0x01, 0x02, 0x03}))
}

func TestAppendRegisters(t *testing.T) {
	require := require.New(t)

	out := []uint16{7}
	out = AppendRegisters(out, []byte{0x00, 0x2a})
	out = AppendRegisters(out, []byte{0x01, 0x00, 0x02, 0x00})
	require.Equal([]uint16{7, 42, 256, 512}, out)
}

func TestProtocolLimits(t *testing.T) {
	assert := assert.New(t)

	// the chunk size keeps one register of headroom below the read ceiling
	assert.Equal(MaxReadRegisters-1, ChunkRegisters)
	assert.LessOrEqual(MaxReadRegisters*2, MaxPayloadBytes)
}
