package rendering

import (
	"embed"
	"math"
	"os"
	"strings"
	"text/template"

	"github.com/atsresumie/latex-studio/internal/style"
	"github.com/atsresumie/latex-studio/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	latexTemplateName = "resume.tex.tmpl"
	contactJoiner     = ` $|$ `
)

// latexTemplateData is passed to the LaTeX template
type latexTemplateData struct {
	FontSize int
	Title    types.TitleBlock
	Sections []types.Section
}

// RenderLaTeX renders a payload as LaTeX in the generator's dialect and applies cfg.
// An empty templatePath uses the built-in template.
func RenderLaTeX(payload types.RenderPayload, cfg types.StyleConfig, templatePath string) (string, error) {
	tmpl, err := parseLaTeXTemplate(templatePath)
	if err != nil {
		return "", err
	}

	data := latexTemplateData{
		FontSize: classFontSize(cfg.BaseFontSizePt),
		Title:    payload.Title,
		Sections: payload.Sections,
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Path: templatePath, Stage: StageExecute, Cause: err}
	}

	return style.Apply(result.String(), cfg), nil
}

// parseLaTeXTemplate loads the template from templatePath, or the embedded
// default when the path is empty. Templates use << >> delimiters.
func parseLaTeXTemplate(templatePath string) (*template.Template, error) {
	var content []byte
	var err error
	if templatePath == "" {
		content, err = templateFS.ReadFile("templates/" + latexTemplateName)
	} else {
		content, err = os.ReadFile(templatePath)
	}
	if err != nil {
		return nil, &TemplateError{Path: templatePath, Stage: StageRead, Cause: err}
	}

	tmpl, err := template.New(latexTemplateName).
		Delims("<<", ">>").
		Funcs(template.FuncMap{
			"esc":      EscapeLaTeX,
			"contacts": joinContacts,
		}).
		Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Path: templatePath, Stage: StageParse, Cause: err}
	}
	return tmpl, nil
}

func joinContacts(contacts []string) string {
	escaped := make([]string, len(contacts))
	for i, c := range contacts {
		escaped[i] = EscapeLaTeX(c)
	}
	return strings.Join(escaped, contactJoiner)
}

// classFontSize picks the closest size the article class accepts. The exact
// size is carried by the injected \fontsize directive.
func classFontSize(pt float64) int {
	switch size := int(math.Round(pt)); {
	case size <= 10:
		return 10
	case size >= 12:
		return 12
	default:
		return size
	}
}
