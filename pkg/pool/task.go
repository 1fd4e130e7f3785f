package pool

import (
	"fmt"
	"runtime/debug"

	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/boxed"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Run executes the task and returns its result in a Box. Run is invoked
	// at most once, outside any pool lock. Failures should be returned as
	// an error value inside the Box rather than panicking; a panic is
	// recovered by the worker and converted to an error-tagged Box.
	Run() *boxed.Box
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func() *boxed.Box

// Run implements the Task interface for TaskFunc.
func (f TaskFunc) Run() *boxed.Box {
	return f()
}

// runTask invokes a task with a recovery boundary so that no task failure
// can escape into the worker loop. A panicking Run yields a Box holding an
// error; a nil Box from a well-behaved Run is normalized to an empty Box.
func runTask(task Task) (result *boxed.Box) {
	defer func() {
		if r := recover(); r != nil {
			result = boxed.Of[error](fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack()))
		}
	}()

	result = task.Run()
	if result == nil {
		result = boxed.None()
	}
	return result
}
