package meshing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"blockbake/internal/metrics"
	"blockbake/internal/profiling"
	"blockbake/internal/world"
)

// ErrNoView is returned for jobs submitted without a block view.
var ErrNoView = errors.New("meshing: rebuild job has no view")

// RebuildJob lights a batch of placed blocks against one view.
type RebuildJob struct {
	ID     int
	View   world.BlockView
	Blocks []PlacedBlock
	// Result channel - receives exactly one result unless the pool shuts down
	ResultChan chan RebuildResult
}

// RebuildResult carries the lit buffers of one job.
type RebuildResult struct {
	ID      int
	Outputs *OutputSet
	Lit     int
	Culled  int
	Err     error
}

// PoolOptions configure every worker's Lighter.
type PoolOptions struct {
	Lighter LighterOptions
	// Smooth, when set, is consulted at the start of each job and overrides
	// Lighter.Smooth so runtime toggles take effect.
	Smooth  func() bool
	Metrics *metrics.Metrics
}

// WorkerPool runs rebuild jobs on a fixed set of goroutines, each with its
// own Lighter.
type WorkerPool struct {
	jobQueue chan RebuildJob
	workers  int
	opts     PoolOptions
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool starts workers goroutines (at least one) behind a queue of
// queueSize pending jobs.
func NewWorkerPool(workers, queueSize int, opts PoolOptions) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	workers = max(workers, 1)
	pool := &WorkerPool{
		jobQueue: make(chan RebuildJob, max(queueSize, 0)),
		workers:  workers,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}
	return pool
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

// SubmitJob queues a job without blocking.
// Returns false if the queue is full or the pool is shut down.
func (p *WorkerPool) SubmitJob(job RebuildJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		p.opts.Metrics.SetQueueLength(len(p.jobQueue))
		return true
	default:
		return false
	}
}

// SubmitJobBlocking waits until the job is queued or ctx ends. It returns
// false if the job was not queued.
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job RebuildJob) bool {
	if p.ctx.Err() != nil || ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		p.opts.Metrics.SetQueueLength(len(p.jobQueue))
		return true
	case <-ctx.Done():
		return false
	case <-p.ctx.Done():
		return false
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	lighter := NewLighter(p.opts.Lighter)

	for {
		select {
		case job := <-p.jobQueue:
			p.opts.Metrics.SetQueueLength(len(p.jobQueue))
			result := p.run(lighter, job)
			if job.ResultChan == nil {
				continue
			}
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *WorkerPool) run(l *Lighter, job RebuildJob) (res RebuildResult) {
	defer profiling.Track("meshing.Rebuild")()
	start := time.Now()
	res.ID = job.ID

	// The view may differ from the previous job's.
	l.Reset()
	l.ResetStats()
	if p.opts.Smooth != nil {
		l.SetSmooth(p.opts.Smooth())
	}

	defer func() {
		if r := recover(); r != nil {
			res.Outputs = nil
			res.Err = fmt.Errorf("meshing: job %d: %v", job.ID, r)
		}
		hits, misses := l.CacheStats()
		p.opts.Metrics.ObserveRebuild(metrics.Rebuild{
			Lit:      res.Lit,
			Culled:   res.Culled,
			Hits:     hits,
			Misses:   misses,
			Duration: time.Since(start),
			Failed:   res.Err != nil,
		})
	}()

	if job.View == nil {
		res.Err = ErrNoView
		return res
	}
	out := NewOutputSet()
	for _, b := range job.Blocks {
		if b.Model == nil {
			continue
		}
		lit, culled := l.LightBlock(job.View, b, out)
		res.Lit += lit
		res.Culled += culled
	}
	res.Outputs = out
	return res
}

// Shutdown stops the workers and waits for them. Queued jobs that were not
// picked up are dropped. Safe to call more than once.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
		p.opts.Metrics.SetQueueLength(0)
	})
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
