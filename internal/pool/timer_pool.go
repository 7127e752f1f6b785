package pool

import (
	"sync"
	"time"
)

var timerPool sync.Pool

// GetTimer returns a timer for the given duration d from the pool.
//
// Return back the timer to the pool with PutTimer.
func GetTimer(d time.Duration) *time.Timer {
	v := timerPool.Get()
	if v == nil {
		return time.NewTimer(d)
	}

	t, _ := v.(*time.Timer)
	if t.Reset(d) {
		// the timer was still active, drain the channel so a stale tick
		// can't be observed by the new user
		select {
		case <-t.C:
		default:
		}
	}

	return t
}

// PutTimer returns timer to the pool.
//
// t cannot be accessed after returning to the pool.
func PutTimer(t *time.Timer) {
	if !t.Stop() {
		// drain t.C if the tick wasn't consumed by the caller
		select {
		case <-t.C:
		default:
		}
	}
	timerPool.Put(t)
}
