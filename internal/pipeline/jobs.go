package pipeline

import (
	"sync"
	"time"

	"github.com/debashish17/docview/internal/render"
)

// JobStatus represents the state of an async render job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks one queued render request. The input text and result tree
// are internal; API handlers read state through Snapshot and Result.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Format   string    `json:"format"`
	ViewMode string    `json:"view_mode"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	input  string
	result *render.Node
	errMsg string
}

// NewJob creates a queued job holding the raw input.
func NewJob(id, format, viewMode, input string) *Job {
	now := time.Now()
	return &Job{
		ID:        id,
		Status:    StatusQueued,
		Format:    format,
		ViewMode:  viewMode,
		CreatedAt: now,
		UpdatedAt: now,
		input:     input,
	}
}

func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// SetResult stores the rendered tree and marks the job completed.
func (j *Job) SetResult(tree *render.Node) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = tree
	j.Status = StatusCompleted
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed with a message.
func (j *Job) Fail(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errMsg = msg
	j.Status = StatusFailed
	j.UpdatedAt = time.Now()
}

// Input returns the raw text to render.
func (j *Job) Input() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.input
}

// Result returns the render tree, nil until completed.
func (j *Job) Result() *render.Node {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string       `json:"job_id"`
	Status   JobStatus    `json:"status"`
	Format   string       `json:"format"`
	ViewMode string       `json:"view_mode"`
	Error    string       `json:"error,omitempty"`
	Result   *render.Node `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy, including the result once available.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Format:   j.Format,
		ViewMode: j.ViewMode,
		Error:    j.errMsg,
		Result:   j.result,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes jobs idle past the TTL.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		idle := now.Sub(job.UpdatedAt)
		job.mu.Unlock()
		if idle > s.ttl {
			delete(s.jobs, id)
		}
	}
}
