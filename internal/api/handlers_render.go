package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/debashish17/docview/internal/paginate"
	"github.com/debashish17/docview/internal/parser"
	"github.com/debashish17/docview/internal/pipeline"
	"github.com/debashish17/docview/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// renderRequest is the body of both the synchronous and async render
// endpoints. Format and ViewMode default to auto-detect and preview;
// Output selects the JSON tree (default) or an HTML string.
type renderRequest struct {
	Text     string `json:"text"`
	Format   string `json:"format,omitempty"`    // latex | markdown | html
	ViewMode string `json:"view_mode,omitempty"` // preview | code
	Output   string `json:"output,omitempty"`    // tree | html
}

func (req *renderRequest) validate() error {
	if req.Text == "" {
		return errors.New("text is required")
	}
	switch req.Format {
	case "", "latex", "markdown", "html":
	default:
		return errors.New("format must be latex, markdown or html")
	}
	switch req.ViewMode {
	case "", "preview", "code":
	default:
		return errors.New("view_mode must be preview or code")
	}
	return nil
}

func (s *Server) decodeRenderRequest(w http.ResponseWriter, r *http.Request) (*renderRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxInputBytes)
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if err := req.validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// renderTree runs the full chain synchronously for one request.
func (s *Server) renderTree(req *renderRequest) *render.Node {
	renderer := s.orchestrator.Renderer()
	if req.ViewMode == "code" {
		return renderer.Code(req.Text)
	}
	doc := parser.Parse(req.Text, parser.Format(req.Format))
	pages := paginate.Paginate(doc)
	return renderer.Preview(pages, doc)
}

// handleRender renders a document in one round trip.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRenderRequest(w, r)
	if !ok {
		return
	}

	tree := s.renderTree(req)
	if req.Output == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(render.HTML(tree)))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"result": tree})
}

// handleSubmitJob queues an async render job and returns its ID.
func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRenderRequest(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(uuid.NewString(), req.Format, req.ViewMode, req.Text)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"job_id": job.ID, "status": job.Status})
}

// handleJobStatus reports a job snapshot, result included once completed.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
