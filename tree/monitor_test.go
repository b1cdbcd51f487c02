package tree

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMonitorMultipleReadersConcurrent(t *testing.T) {
	m := newMonitor()
	const n = 8
	var active, maxActive int32
	var wg sync.WaitGroup

	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			m.lock(roleReader)
			cur := atomic.AddInt32(&active, 1)
			for {
				prev := atomic.LoadInt32(&maxActive)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			m.unlock(roleReader)
		}()
	}
	close(start)
	wg.Wait()
	if maxActive < 2 {
		t.Fatalf("readers never overlapped: max concurrent = %d", maxActive)
	}
}

func TestMonitorWriterExcludesReaders(t *testing.T) {
	m := newMonitor()
	m.lock(roleWriter)

	done := make(chan struct{})
	go func() {
		m.lock(roleReader)
		m.unlock(roleReader)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("reader admitted while writer active")
	case <-time.After(20 * time.Millisecond):
	}

	m.unlock(roleWriter)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader never admitted after writer released")
	}
}

func TestMonitorWritersMutuallyExclusive(t *testing.T) {
	m := newMonitor()
	var active, maxActive int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			m.lock(roleWriter)
			cur := atomic.AddInt32(&active, 1)
			for {
				prev := atomic.LoadInt32(&maxActive)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, cur) {
					break
				}
			}
			atomic.AddInt32(&active, -1)
			m.unlock(roleWriter)
		}()
	}
	close(start)
	wg.Wait()
	if maxActive != 1 {
		t.Fatalf("writers overlapped: max concurrent = %d", maxActive)
	}
}

// TestMonitorNoWriterStarvation exercises the fairness guarantee:
// under a steady stream of readers, a waiting writer is not postponed
// indefinitely.
func TestMonitorNoWriterStarvation(t *testing.T) {
	m := newMonitor()
	m.lock(roleReader)

	writerDone := make(chan struct{})
	go func() {
		m.lock(roleWriter)
		m.unlock(roleWriter)
		close(writerDone)
	}()

	// Give the writer time to register as waiting before more readers
	// pile on.
	time.Sleep(10 * time.Millisecond)

	stop := make(chan struct{})
	var floodWG sync.WaitGroup
	floodWG.Add(1)
	go func() {
		defer floodWG.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			m.lock(roleReader)
			time.Sleep(time.Millisecond)
			m.unlock(roleReader)
		}
	}()

	m.unlock(roleReader) // release the initial reader

	select {
	case <-writerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("writer starved under continuous reader arrivals")
	}
	close(stop)
	floodWG.Wait()
}
