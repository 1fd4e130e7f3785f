package benchmark

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/boxed"
	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/pool"
)

func newBenchPool(b *testing.B, workers, capacity int) *pool.Pool {
	b.Helper()
	p, err := pool.New(pool.Config{
		Mode:          pool.Fixed,
		QueueCapacity: capacity,
		WorkerCeiling: workers,
		SubmitTimeout: 10 * time.Second,
	})
	if err != nil {
		b.Fatalf("failed to create pool: %v", err)
	}
	if err := p.Start(workers); err != nil {
		b.Fatalf("failed to start pool: %v", err)
	}
	return p
}

// BenchmarkPoolSubmitGet measures end-to-end submit plus result retrieval.
func BenchmarkPoolSubmitGet(b *testing.B) {
	workerCounts := []int{2, 4, 8}

	for _, workers := range workerCounts {
		b.Run(workerLabel(workers), func(b *testing.B) {
			p := newBenchPool(b, workers, 1000)
			defer func() { _ = p.Stop(true) }()

			task := pool.TaskFunc(func() *boxed.Box {
				return boxed.Of(1)
			})

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out := p.Submit(task)
				_ = out.Get()
			}
		})
	}
}

// BenchmarkPoolThroughput measures pipelined submission with the Gets
// deferred to the end.
func BenchmarkPoolThroughput(b *testing.B) {
	p := newBenchPool(b, 4, 1000)
	defer func() { _ = p.Stop(true) }()

	task := pool.TaskFunc(func() *boxed.Box {
		sum := 0
		for i := 0; i < 100; i++ {
			sum += i
		}
		return boxed.Of(sum)
	})

	b.ReportAllocs()
	b.ResetTimer()

	outs := make([]*pool.Outcome, 0, b.N)
	for i := 0; i < b.N; i++ {
		outs = append(outs, p.Submit(task))
	}
	for _, out := range outs {
		_ = out.Get()
	}
}

// BenchmarkPoolContention measures concurrent submitters racing for queue
// slots.
func BenchmarkPoolContention(b *testing.B) {
	p := newBenchPool(b, 4, 1000)
	defer func() { _ = p.Stop(true) }()

	task := pool.TaskFunc(func() *boxed.Box {
		return boxed.None()
	})

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			out := p.Submit(task)
			_ = out.Get()
		}
	})
}

// BenchmarkOutcomeGet measures repeated reads of a resolved Outcome.
func BenchmarkOutcomeGet(b *testing.B) {
	p := newBenchPool(b, 1, 10)
	defer func() { _ = p.Stop(true) }()

	out := p.Submit(pool.TaskFunc(func() *boxed.Box {
		return boxed.Of("cached")
	}))
	_ = out.Get() // resolve once

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = out.Get()
	}
}

// BenchmarkBoxCast measures the typed extraction path.
func BenchmarkBoxCast(b *testing.B) {
	box := boxed.Of(12345)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := boxed.Cast[int](box); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPoolStartStop measures full lifecycle cost.
func BenchmarkPoolStartStop(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, err := pool.New(pool.Config{
			Mode:          pool.Fixed,
			QueueCapacity: 10,
			WorkerCeiling: 4,
		})
		if err != nil {
			b.Fatalf("failed to create pool: %v", err)
		}
		if err := p.Start(4); err != nil {
			b.Fatalf("failed to start pool: %v", err)
		}
		if err := p.Stop(true); err != nil {
			b.Fatalf("failed to stop pool: %v", err)
		}
	}
}

// BenchmarkElasticGrowth measures submission under load in elastic mode.
func BenchmarkElasticGrowth(b *testing.B) {
	p, err := pool.New(pool.Config{
		Mode:          pool.Elastic,
		QueueCapacity: 100,
		WorkerCeiling: 8,
		SubmitTimeout: 10 * time.Second,
		IdleTimeout:   time.Second,
	})
	if err != nil {
		b.Fatalf("failed to create pool: %v", err)
	}
	if err := p.Start(2); err != nil {
		b.Fatalf("failed to start pool: %v", err)
	}
	defer func() { _ = p.Stop(true) }()

	var wg sync.WaitGroup
	task := pool.TaskFunc(func() *boxed.Box {
		return boxed.None()
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(1)
		out := p.Submit(task)
		go func() {
			defer wg.Done()
			_ = out.Get()
		}()
	}
	wg.Wait()
}

func workerLabel(workers int) string {
	return "workers-" + strconv.Itoa(workers)
}
