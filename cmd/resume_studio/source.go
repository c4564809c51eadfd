package main

import (
	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/latex"
	"github.com/atsresumie/latex-studio/internal/plaintext"
	"github.com/atsresumie/latex-studio/internal/rendering"
	"github.com/atsresumie/latex-studio/internal/types"
)

var (
	sourceIn  string
	sourceOut string

	renderPayloadFile string
	renderStyleFile   string
	renderTemplate    string
)

var stripCmd = &cobra.Command{
	Use:   "strip",
	Short: "Strip LaTeX commands from text",
	RunE:  runStrip,
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the header and sections of a LaTeX resume as JSON",
	RunE:  runExtract,
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive a render payload from LaTeX or plain resume text",
	RunE:  runDerive,
}

var parseTextCmd = &cobra.Command{
	Use:   "parse-text",
	Short: "Parse plain resume text into a render payload",
	RunE:  runParseText,
}

var renderLaTeXCmd = &cobra.Command{
	Use:   "render-latex",
	Short: "Render a payload through the LaTeX resume template",
	RunE:  runRenderLaTeX,
}

func init() {
	for _, cmd := range []*cobra.Command{stripCmd, extractCmd, deriveCmd, parseTextCmd} {
		cmd.Flags().StringVarP(&sourceIn, "in", "i", "", "Input file (default: stdin)")
		cmd.Flags().StringVarP(&sourceOut, "out", "o", "", "Output file (default: stdout)")
		rootCmd.AddCommand(cmd)
	}

	renderLaTeXCmd.Flags().StringVarP(&renderPayloadFile, "payload", "p", "", "RenderPayload JSON file (default: stdin)")
	renderLaTeXCmd.Flags().StringVarP(&renderStyleFile, "style", "s", "", "StyleConfig JSON file")
	renderLaTeXCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "LaTeX template file (default: built-in or config)")
	renderLaTeXCmd.Flags().StringVarP(&sourceOut, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(renderLaTeXCmd)
}

func runStrip(cmd *cobra.Command, _ []string) error {
	text, err := readInput(cmd, sourceIn)
	if err != nil {
		return err
	}
	return writeOutput(cmd, sourceOut, []byte(latex.StripCommands(text)+"\n"))
}

func runExtract(cmd *cobra.Command, _ []string) error {
	src, err := readInput(cmd, sourceIn)
	if err != nil {
		return err
	}
	sections := latex.ExtractSections(src)
	if sections == nil {
		sections = []types.Section{}
	}
	return writeJSON(cmd, sourceOut, map[string]any{
		"name":     latex.ExtractName(src),
		"contacts": latex.ExtractContacts(src),
		"sections": sections,
	})
}

func runDerive(cmd *cobra.Command, _ []string) error {
	text, err := readInput(cmd, sourceIn)
	if err != nil {
		return err
	}
	return writeJSON(cmd, sourceOut, plaintext.DeriveRenderPayloadFromResumeText(text))
}

func runParseText(cmd *cobra.Command, _ []string) error {
	text, err := readInput(cmd, sourceIn)
	if err != nil {
		return err
	}
	return writeJSON(cmd, sourceOut, plaintext.ParseResumePlainText(text))
}

func runRenderLaTeX(cmd *cobra.Command, _ []string) error {
	payload, err := readPayload(cmd, renderPayloadFile)
	if err != nil {
		return err
	}
	cfg, _, err := readStyle(renderStyleFile)
	if err != nil {
		return err
	}
	templatePath := renderTemplate
	if templatePath == "" {
		templatePath = appConfig.Template
	}

	out, err := rendering.RenderLaTeX(payload, cfg, templatePath)
	if err != nil {
		return err
	}
	return writeOutput(cmd, sourceOut, []byte(out))
}
