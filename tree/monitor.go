package tree

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// monitor is the per-folder rendezvous object: a fair readers/writers
// lock with explicit hand-off between alternating batches, so neither
// role can starve the other under sustained arrivals.
//
// change is the baton: a positive value credits an incoming batch of
// readers (decremented once per admitted reader, each of whom wakes
// the next), -1 credits a single incoming writer, and 0 forbids both,
// forcing every fresh arrival to wait its turn. Without the baton, a
// thread woken by a signal and a thread arriving fresh could both
// race past the role that just released the lock.
type monitor struct {
	mu sync.Mutex

	rActive, wActive   int
	rWaiting, wWaiting int
	change             int

	cvReader *sync.Cond
	cvWriter *sync.Cond
}

func newMonitor() *monitor {
	m := &monitor{}
	m.cvReader = sync.NewCond(&m.mu)
	m.cvWriter = sync.NewCond(&m.mu)
	return m
}

// rlock is the reader entry protocol.
func (m *monitor) rlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.wActive+m.wWaiting > 0 && m.change <= 0 {
		m.rWaiting++
		m.cvReader.Wait()
		m.rWaiting--
	}
	m.change--
	m.rActive++
	if m.change > 0 {
		m.cvReader.Signal()
	}
	if m.change < 0 {
		m.change = 0
	}
}

// runlock is the reader exit protocol.
func (m *monitor) runlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rActive <= 0 {
		panic(errors.Wrap(fmt.Errorf("rActive=%d", m.rActive), "monitor: runlock with no active reader"))
	}
	m.rActive--
	if m.rActive == 0 && m.wWaiting > 0 {
		m.change = -1
		m.cvWriter.Signal()
	}
}

// wlock is the writer entry protocol.
func (m *monitor) wlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.wActive+m.rActive > 0 && m.change != -1 {
		m.wWaiting++
		m.cvWriter.Wait()
		m.wWaiting--
	}
	m.wActive++
	m.change = 0
}

// wunlock is the writer exit protocol.
func (m *monitor) wunlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.wActive <= 0 {
		panic(errors.Wrap(fmt.Errorf("wActive=%d", m.wActive), "monitor: wunlock with no active writer"))
	}
	m.wActive--
	switch {
	case m.rWaiting > 0:
		m.change = m.rWaiting
		m.cvReader.Signal()
	case m.wWaiting > 0:
		m.change = -1
		m.cvWriter.Signal()
	default:
		m.change = 0
	}
}

// lock acquires the monitor in the given role; unlock releases it.
// The walker (walker.go) and move (move.go) only ever deal in roles,
// never call rlock/wlock directly. Neither method accepts a nil
// monitor.
type role bool

const (
	roleReader role = false
	roleWriter role = true
)

func (m *monitor) lock(r role) {
	if r == roleWriter {
		m.wlock()
	} else {
		m.rlock()
	}
}

func (m *monitor) unlock(r role) {
	if r == roleWriter {
		m.wunlock()
	} else {
		m.runlock()
	}
}
