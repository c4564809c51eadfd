package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/atsresumie/latex-studio/internal/export"
	"github.com/atsresumie/latex-studio/internal/llm"
	"github.com/atsresumie/latex-studio/internal/pagination"
	"github.com/atsresumie/latex-studio/internal/plaintext"
	"github.com/atsresumie/latex-studio/internal/style"
	"github.com/atsresumie/latex-studio/internal/types"
	"github.com/atsresumie/latex-studio/internal/validation"
)

type layoutRequest struct {
	Payload  json.RawMessage `json:"payload"`
	Settings json.RawMessage `json:"settings"`
	Label    string          `json:"label"`
}

type sourceExportRequest struct {
	Latex   string          `json:"latex"`
	Payload json.RawMessage `json:"payload"`
	Label   string          `json:"label"`
}

type compileRequest struct {
	Latex     string          `json:"latex"`
	Style     json.RawMessage `json:"style"`
	Label     string          `json:"label"`
	PageLimit int             `json:"pageLimit"`
}

type generateRequest struct {
	ResumeText     string          `json:"resumeText"`
	JobDescription string          `json:"jobDescription"`
	Instructions   string          `json:"instructions"`
	Style          json.RawMessage `json:"style"`
}

type generateResponse struct {
	Latex string            `json:"latex"`
	Style types.StyleConfig `json:"style"`
}

// handlePaginate returns the page layout of a payload
func (s *Server) handlePaginate(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	payload, err := decodePayload(req.Payload)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	settings, err := decodeSettings(req.Settings)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, pagination.Paginate(payload, settings))
}

// handleExportPDF captures the paginated preview into a PDF download
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	payload, err := decodePayload(req.Payload)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	settings, err := decodeSettings(req.Settings)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := s.exporter.PDF(r.Context(), payload, settings)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.fileResponse(w, export.Artifact{
		Filename:    export.Filename(req.Label, "pdf", s.now()),
		ContentType: export.ContentTypePDF,
		Data:        data,
	})
}

// handleExportDOCX converts LaTeX into a Word download
func (s *Server) handleExportDOCX(w http.ResponseWriter, r *http.Request) {
	var req sourceExportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("latex", req.Latex); err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := s.exporter.DOCX(req.Latex)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.fileResponse(w, export.Artifact{
		Filename:    export.Filename(req.Label, "docx", s.now()),
		ContentType: export.ContentTypeDOCX,
		Data:        data,
	})
}

// handleExportText renders a payload, or the payload derived from LaTeX, as text
func (s *Server) handleExportText(w http.ResponseWriter, r *http.Request) {
	var req sourceExportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var data []byte
	switch {
	case len(req.Payload) > 0 && string(req.Payload) != "null":
		payload, err := decodePayload(req.Payload)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		data = s.exporter.Text(payload)
	case req.Latex != "":
		data = s.exporter.Text(plaintext.DeriveRenderPayloadFromResumeText(req.Latex))
	default:
		s.fail(w, r, &ErrValidation{Field: "payload", Message: "payload or latex is required"})
		return
	}

	s.fileResponse(w, export.Artifact{
		Filename:    export.Filename(req.Label, "txt", s.now()),
		ContentType: export.ContentTypeText,
		Data:        data,
	})
}

// handleExportBundle returns the docx, txt and compiled pdf exports together
func (s *Server) handleExportBundle(w http.ResponseWriter, r *http.Request) {
	var req sourceExportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("latex", req.Latex); err != nil {
		s.fail(w, r, err)
		return
	}

	artifacts, err := s.exporter.Bundle(r.Context(), req.Latex, req.Label, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"artifacts": artifacts})
}

// handleCompile compiles LaTeX, optionally restyled first, through the compile service
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	if s.compiler == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "latex compiler"})
		return
	}

	var req compileRequest
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
	source := req.Latex
	if ok {
		source = style.Apply(source, cfg)
	}

	res, err := s.compiler.CompileWithInfo(r.Context(), source)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if req.PageLimit > 0 {
		if _, err := validation.CheckPageLimit(res.PDF, req.PageLimit); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	cacheState := "MISS"
	if res.Cached {
		cacheState = "HIT"
	}
	w.Header().Set("X-Page-Count", strconv.Itoa(res.Pages))
	w.Header().Set("X-Cache", cacheState)
	s.fileResponse(w, export.Artifact{
		Filename:    export.Filename(req.Label, "pdf", s.now()),
		ContentType: export.ContentTypePDF,
		Data:        res.PDF,
	})
}

// handleGenerate asks the model for a tailored LaTeX resume
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "resume generation"})
		return
	}

	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("resumeText", req.ResumeText); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("jobDescription", req.JobDescription); err != nil {
		s.fail(w, r, err)
		return
	}
	cfg, ok, err := decodeStyle(req.Style)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out, err := llm.GenerateTailoredLatex(r.Context(), s.generator, llm.TailorRequest{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		Instructions:   req.Instructions,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ok {
		out = style.Apply(out, cfg)
	}
	s.jsonResponse(w, http.StatusOK, generateResponse{Latex: out, Style: style.Parse(out)})
}
