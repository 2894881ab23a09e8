package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/debashish17/docview/internal/export"
	"github.com/debashish17/docview/internal/paginate"
	"github.com/debashish17/docview/internal/parser"
)

type exportRequest struct {
	Text     string `json:"text"`
	Format   string `json:"format,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// handleExportDOCX renders the document and streams it as a Word
// attachment, mirroring the project export flow of the hosting app.
func (s *Server) handleExportDOCX(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxInputBytes)
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, errors.New("text is required").Error(), http.StatusBadRequest)
		return
	}

	doc := parser.Parse(req.Text, parser.Format(req.Format))
	pages := paginate.Paginate(doc)
	tree := s.orchestrator.Renderer().Preview(pages, doc)

	data, err := export.DOCX(tree)
	if err != nil {
		s.log.Error("docx export failed", "error", err)
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := req.Filename
	if filename == "" {
		if doc.Meta.Title != "" {
			filename = doc.Meta.Title
		} else {
			filename = "document"
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".docx"))
	w.Write(data)
}
