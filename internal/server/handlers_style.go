package server

import (
	"encoding/json"
	"net/http"

	"github.com/atsresumie/latex-studio/internal/style"
)

type styleApplyRequest struct {
	Latex string          `json:"latex"`
	Style json.RawMessage `json:"style"`
}

type styleApplyResponse struct {
	Latex      string                 `json:"latex"`
	Validation style.ValidationResult `json:"validation"`
}

// handleStyleApply injects the style block into a LaTeX document
func (s *Server) handleStyleApply(w http.ResponseWriter, r *http.Request) {
	var req styleApplyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("latex", req.Latex); err != nil {
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

	out := style.Apply(req.Latex, cfg)
	s.jsonResponse(w, http.StatusOK, styleApplyResponse{Latex: out, Validation: style.Validate(out)})
}

// handleStyleParse recovers the style parameters of a LaTeX document
func (s *Server) handleStyleParse(w http.ResponseWriter, r *http.Request) {
	var req latexRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, style.Parse(req.Latex))
}

// handleStyleValidate checks a document skeleton. Invalid documents still answer 200.
func (s *Server) handleStyleValidate(w http.ResponseWriter, r *http.Request) {
	var req latexRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, style.Validate(req.Latex))
}
