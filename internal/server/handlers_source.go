package server

import (
	"encoding/json"
	"net/http"

	"github.com/atsresumie/latex-studio/internal/latex"
	"github.com/atsresumie/latex-studio/internal/plaintext"
	"github.com/atsresumie/latex-studio/internal/rendering"
	"github.com/atsresumie/latex-studio/internal/types"
)

type textRequest struct {
	Text string `json:"text"`
}

type latexRequest struct {
	Latex string `json:"latex"`
}

type extractResponse struct {
	Name     string          `json:"name"`
	Contacts []string        `json:"contacts"`
	Sections []types.Section `json:"sections"`
}

type renderLatexRequest struct {
	Payload json.RawMessage `json:"payload"`
	Style   json.RawMessage `json:"style"`
}

// handleStrip removes LaTeX commands from a fragment
func (s *Server) handleStrip(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"text": latex.StripCommands(req.Text)})
}

// handleExtract returns the header and typed sections of a LaTeX resume
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req latexRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	resp := extractResponse{
		Name:     latex.ExtractName(req.Latex),
		Contacts: latex.ExtractContacts(req.Latex),
		Sections: latex.ExtractSections(req.Latex),
	}
	if resp.Contacts == nil {
		resp.Contacts = []string{}
	}
	if resp.Sections == nil {
		resp.Sections = []types.Section{}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDerive builds a payload from LaTeX or plain resume text
func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, plaintext.DeriveRenderPayloadFromResumeText(req.Text))
}

// handlePlain parses plain resume text into a payload
func (s *Server) handlePlain(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, plaintext.ParseResumePlainText(req.Text))
}

// handleRenderLatex renders a payload through the LaTeX resume template
func (s *Server) handleRenderLatex(w http.ResponseWriter, r *http.Request) {
	var req renderLatexRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	payload, err := decodePayload(req.Payload)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cfg, _, err := decodeStyle(req.Style)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out, err := rendering.RenderLaTeX(payload, cfg, s.template)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"latex": out})
}
