package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/CodeSingerAlex/ThreadPoolUtil/internal/testutil"
)

func TestLatchSignalBeforeWait(t *testing.T) {
	l := NewLatch(0)
	l.Signal()

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait should return immediately after a prior Signal")
	}
}

func TestLatchWaitBlocksUntilSignal(t *testing.T) {
	l := NewLatch(0)

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned without a Signal")
	case <-time.After(20 * time.Millisecond):
	}

	l.Signal()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Signal")
	}
}

func TestLatchInitialCount(t *testing.T) {
	l := NewLatch(3)

	for i := 0; i < 3; i++ {
		done := make(chan struct{})
		go func() {
			l.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("Wait %d should not block with a positive count", i)
		}
	}
}

func TestLatchCounting(t *testing.T) {
	l := NewLatch(0)

	const n = 8
	var released atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Wait()
			released.Add(1)
		}()
	}

	// Each signal releases exactly one waiter.
	for i := 1; i <= n; i++ {
		l.Signal()
		want := int32(i)
		testutil.Eventually(t, time.Second, func() bool {
			return released.Load() == want
		}, "one waiter should be released per signal")
	}

	wg.Wait()
	testutil.AssertEqual(t, released.Load(), int32(n))
}
