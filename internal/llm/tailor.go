package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/atsresumie/latex-studio/internal/logging"
	"github.com/atsresumie/latex-studio/internal/prompts"
	"github.com/atsresumie/latex-studio/internal/style"
)

const promptFile = "generation.json"

// TailorRequest is the input of a tailored resume generation
type TailorRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	Instructions   string `json:"instructions,omitempty"`
}

// GenerationError represents generated output that is not a usable LaTeX document
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// GenerateTailoredLatex asks the model for a complete LaTeX resume tailored to
// the job description. When the first answer fails structural validation the
// model gets one repair attempt.
func GenerateTailoredLatex(ctx context.Context, client Client, req TailorRequest) (string, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return "", &GenerationError{Message: "resume text is required"}
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return "", &GenerationError{Message: "job description is required"}
	}

	log := logging.WithComponent("llm")

	prompt, err := prompts.Render(promptFile, "tailor-latex", map[string]string{
		"ResumeText":     req.ResumeText,
		"JobDescription": req.JobDescription,
		"Instructions":   req.Instructions,
	})
	if err != nil {
		return "", &GenerationError{Message: "failed to build prompt", Cause: err}
	}

	out, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Message: "model request failed", Cause: err}
	}
	latex := StripCodeFences(out)

	result := style.Validate(latex)
	if result.Valid {
		return latex, nil
	}

	log.WithField("error", result.Error).Warn("generated latex failed validation, requesting repair")
	prompt, err = prompts.Render(promptFile, "repair-latex", map[string]string{
		"Error": result.Error,
		"Latex": latex,
	})
	if err != nil {
		return "", &GenerationError{Message: "failed to build repair prompt", Cause: err}
	}

	out, err = client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Message: "model repair request failed", Cause: err}
	}
	latex = StripCodeFences(out)

	if result := style.Validate(latex); !result.Valid {
		return "", &GenerationError{Message: result.Error}
	}
	return latex, nil
}
