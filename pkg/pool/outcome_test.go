package pool

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/CodeSingerAlex/ThreadPoolUtil/internal/testutil"
	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/boxed"
	tperrors "github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/errors"
)

func TestOutcomeGetReturnsCompletedValue(t *testing.T) {
	out := newOutcome(TaskFunc(func() *boxed.Box { return nil }))

	go func() {
		time.Sleep(10 * time.Millisecond)
		out.complete(boxed.Of("done"))
	}()

	v, err := boxed.Cast[string](out.Get())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, "done")
	testutil.AssertEqual(t, out.Valid(), true)
}

func TestOutcomeGetIsMemoized(t *testing.T) {
	out := newOutcome(TaskFunc(func() *boxed.Box { return nil }))
	out.complete(boxed.Of(99))

	first := out.Get()
	second := out.Get()

	// The same box, not a re-wait: a single latch signal serves every Get.
	testutil.AssertEqual(t, first, second)

	v, err := boxed.Cast[int](second)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 99)
}

func TestOutcomeConcurrentGets(t *testing.T) {
	out := newOutcome(TaskFunc(func() *boxed.Box { return nil }))

	const readers = 6
	boxes := make([]*boxed.Box, readers)
	var wg sync.WaitGroup

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			boxes[i] = out.Get()
		}(i)
	}

	time.Sleep(10 * time.Millisecond)
	out.complete(boxed.Of("shared"))
	wg.Wait()

	for i := 1; i < readers; i++ {
		testutil.AssertEqual(t, boxes[i], boxes[0])
	}
	v, err := boxed.Cast[string](boxes[0])
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, "shared")
}

func TestRejectedOutcome(t *testing.T) {
	out := rejectedOutcome(tperrors.ErrRejected)

	testutil.AssertEqual(t, out.Valid(), false)
	if !errors.Is(out.Err(), tperrors.ErrRejected) {
		t.Fatalf("Err() = %v, want ErrRejected", out.Err())
	}

	// Get must return the sentinel immediately, without blocking.
	done := make(chan *boxed.Box, 1)
	go func() { done <- out.Get() }()

	select {
	case b := <-done:
		testutil.AssertEqual(t, b.Empty(), true)
	case <-time.After(time.Second):
		t.Fatal("Get on an invalid Outcome should not block")
	}
}

func TestOutcomeRejectReleasesWaiter(t *testing.T) {
	out := newOutcome(TaskFunc(func() *boxed.Box { return nil }))

	done := make(chan *boxed.Box, 1)
	go func() { done <- out.Get() }()

	time.Sleep(10 * time.Millisecond)
	out.reject(tperrors.ErrCanceled)

	select {
	case b := <-done:
		testutil.AssertEqual(t, b.Empty(), true)
	case <-time.After(time.Second):
		t.Fatal("reject should release a blocked Get")
	}

	testutil.AssertEqual(t, out.Valid(), false)
	if !errors.Is(out.Err(), tperrors.ErrCanceled) {
		t.Fatalf("Err() = %v, want ErrCanceled", out.Err())
	}
}

func TestOutcomeTaskAccessor(t *testing.T) {
	task := TaskFunc(func() *boxed.Box { return boxed.Of(1) })
	out := newOutcome(task)

	if out.Task() == nil {
		t.Fatal("Task() should return the linked task")
	}
	testutil.AssertEqual(t, rejectedOutcome(tperrors.ErrNotRunning).Task() == nil, true)
}
