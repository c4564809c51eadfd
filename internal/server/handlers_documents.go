package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/atsresumie/latex-studio/internal/db"
	"github.com/atsresumie/latex-studio/internal/server/middleware"
	"github.com/atsresumie/latex-studio/internal/style"
	"github.com/atsresumie/latex-studio/internal/validation"
)

type createDocumentRequest struct {
	Label string `json:"label"`
	Latex string `json:"latex"`
}

type updateStyleRequest struct {
	Style json.RawMessage `json:"style"`
}

// documentID parses the {id} path value
func documentID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid document ID"}
	}
	return id, nil
}

// loadDocument fetches a document or fails with not found
func (s *Server) loadDocument(r *http.Request, id uuid.UUID) (*db.Document, error) {
	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &ErrNotFound{Resource: "document", ID: id.String()}
	}
	return doc, nil
}

// handleCreateDocument stores a LaTeX document with the style parsed from it
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "document storage"})
		return
	}

	var req createDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := validation.Latex(req.Latex); err != nil {
		s.fail(w, r, err)
		return
	}

	doc, err := s.store.CreateDocument(r.Context(), req.Label, req.Latex, style.Parse(req.Latex))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	subject, _ := middleware.GetSubject(r)
	s.log.WithField("document_id", doc.ID).WithField("subject", subject).Info("document created")
	s.jsonResponse(w, http.StatusCreated, doc)
}

// handleGetDocument returns the latest version of a document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "document storage"})
		return
	}
	id, err := documentID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc, err := s.loadDocument(r, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleListVersions returns every saved version of a document
func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "document storage"})
		return
	}
	id, err := documentID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	versions, err := s.store.ListDocumentVersions(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(versions) == 0 {
		s.fail(w, r, &ErrNotFound{Resource: "document", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"versions": versions})
}

// handleUpdateDocumentStyle restyles a document and saves it as a new version
func (s *Server) handleUpdateDocumentStyle(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "document storage"})
		return
	}
	id, err := documentID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req updateStyleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	cfg, ok, err := decodeStyle(req.Style)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !ok {
		s.fail(w, r, &ErrValidation{Field: "style", Message: "style is required"})
		return
	}

	doc, err := s.loadDocument(r, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	restyled := style.Apply(doc.Latex, cfg)
	if err := validation.Latex(restyled); err != nil {
		s.fail(w, r, err)
		return
	}

	updated, err := s.store.SaveDocumentVersion(r.Context(), id, restyled, cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if updated == nil {
		s.fail(w, r, &ErrNotFound{Resource: "document", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}
