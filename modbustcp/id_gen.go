package modbustcp

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"
)

// reqIDGenerator produces request correlation ids for log records.
//
// The starting id is randomized so ids from different processes are unlikely
// to collide in aggregated logs, and atomically incremented to stay unique in
// concurrent environments.
type reqIDGenerator struct {
	id atomic.Uint32
}

func newReqIDGenerator() *reqIDGenerator {
	inst := &reqIDGenerator{}
	var buf [4]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return inst
	}
	inst.id.Store(binary.LittleEndian.Uint32(buf[:]))

	return inst
}

var (
	reqIDInst = &reqIDGenerator{}
	reqIDOnce sync.Once
)

// nextRequestID returns the next request correlation id. One id covers every
// chunk of a chunked read, which keeps the chunks greppable as one operation.
func nextRequestID() uint32 {
	reqIDOnce.Do(func() {
		reqIDInst = newReqIDGenerator()
	})

	return reqIDInst.id.Add(1)
}
