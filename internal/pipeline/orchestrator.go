// Package pipeline runs render jobs on a bounded worker pool with an
// in-memory TTL job registry. Each job's parse owns an isolated marker
// store, so workers never share parse state.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/debashish17/docview/internal/config"
	"github.com/debashish17/docview/internal/paginate"
	"github.com/debashish17/docview/internal/parser"
	"github.com/debashish17/docview/internal/render"
)

// Orchestrator manages the render job queue.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	renderer *render.Renderer
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(cfg config.Config, renderer *render.Renderer, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		renderer: renderer,
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines and the job store janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// process runs the full parse → paginate → render chain for one job.
// The chain is failure-contained, so a job can only fail structurally
// (and then still carries an Error-section render).
func (o *Orchestrator) process(job *Job) {
	log := o.log.With("job_id", job.ID, "format", job.Format)
	job.SetStatus(StatusRendering)
	start := time.Now()

	if job.ViewMode == "code" {
		job.SetResult(o.renderer.Code(job.Input()))
		log.Info("job rendered", "mode", "code", "duration_ms", time.Since(start).Milliseconds())
		return
	}

	doc := parser.Parse(job.Input(), parser.Format(job.Format))
	pages := paginate.Paginate(doc)
	job.SetResult(o.renderer.Preview(pages, doc))
	log.Info("job rendered", "sections", len(doc.Sections), "pages", len(pages),
		"duration_ms", time.Since(start).Milliseconds())
}

// Submit queues a new job.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.Fail("queue full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID, nil when unknown or evicted.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Renderer exposes the shared renderer for synchronous API handlers.
func (o *Orchestrator) Renderer() *render.Renderer {
	return o.renderer
}
