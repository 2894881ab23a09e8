package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/debashish17/docview/internal/config"
	"github.com/debashish17/docview/internal/render"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.Config {
	return config.Config{
		WorkerCount:   2,
		MaxQueueSize:  8,
		JobTTL:        time.Minute,
		MaxInputBytes: 1 << 20,
	}
}

func waitForJob(t *testing.T, job *Job) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := job.Snapshot()
		if snap.Status == StatusCompleted || snap.Status == StatusFailed {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish, status %s", job.ID, job.Snapshot().Status)
	return JobSnapshot{}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)
	stale := NewJob("stale", "", "", "x")
	store.Put(stale)

	time.Sleep(25 * time.Millisecond)
	fresh := NewJob("fresh", "", "", "y")
	store.Put(fresh)

	store.Cleanup()
	if store.Get("stale") != nil {
		t.Error("expected stale job evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job retained")
	}
}

func TestJob_Lifecycle(t *testing.T) {
	job := NewJob("j1", "latex", "preview", "\\section{S}\nx")
	if job.Status != StatusQueued {
		t.Errorf("expected queued, got %s", job.Status)
	}
	if job.Input() != "\\section{S}\nx" {
		t.Errorf("expected input preserved, got %q", job.Input())
	}

	job.SetStatus(StatusRendering)
	if snap := job.Snapshot(); snap.Status != StatusRendering {
		t.Errorf("expected rendering, got %s", snap.Status)
	}

	tree := &render.Node{Type: render.NodeDocument}
	job.SetResult(tree)
	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", snap.Status)
	}
	if snap.Result != tree {
		t.Error("expected result tree in snapshot")
	}

	failed := NewJob("j2", "", "", "x")
	failed.Fail("boom")
	snap = failed.Snapshot()
	if snap.Status != StatusFailed || snap.Error != "boom" {
		t.Errorf("expected failed snapshot with message, got %+v", snap)
	}
}

func TestOrchestrator_ProcessesPreviewJob(t *testing.T) {
	o := NewOrchestrator(testConfig(), render.New(nil), testLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("p1", "latex", "preview", "\\section{Intro}\nHello $x^2$ world.")
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	snap := waitForJob(t, job)
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", snap.Status, snap.Error)
	}
	if snap.Result == nil || snap.Result.Type != render.NodeDocument {
		t.Fatalf("expected document tree, got %+v", snap.Result)
	}
	if o.GetJob("p1") != job {
		t.Error("expected job retrievable by id")
	}
}

func TestOrchestrator_ProcessesCodeJob(t *testing.T) {
	o := NewOrchestrator(testConfig(), render.New(nil), testLogger())
	o.Start(context.Background())
	defer o.Stop()

	src := "raw $source$ text"
	job := NewJob("c1", "", "code", src)
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	snap := waitForJob(t, job)
	if snap.Result == nil || snap.Result.Type != render.NodeSource {
		t.Fatalf("expected source node, got %+v", snap.Result)
	}
	if snap.Result.Text != src {
		t.Errorf("expected verbatim source, got %q", snap.Result.Text)
	}
}

func TestOrchestrator_MalformedInputStillCompletes(t *testing.T) {
	// Parse failures are contained upstream; the job completes with an
	// Error-section render rather than failing.
	o := NewOrchestrator(testConfig(), render.New(nil), testLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("m1", "latex", "preview", "\\begin{document\nText.")
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	snap := waitForJob(t, job)
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", snap.Status)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	// Not started: nothing drains the queue.
	o := NewOrchestrator(cfg, render.New(nil), testLogger())

	if err := o.Submit(NewJob("q1", "", "", "x")); err != nil {
		t.Fatalf("unexpected error on first submit: %v", err)
	}
	overflow := NewJob("q2", "", "", "y")
	if err := o.Submit(overflow); err == nil {
		t.Fatal("expected queue-full error")
	}
	if overflow.Snapshot().Status != StatusFailed {
		t.Errorf("expected overflow job failed, got %s", overflow.Snapshot().Status)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
