package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/export"
	"github.com/atsresumie/latex-studio/internal/pagination"
	"github.com/atsresumie/latex-studio/internal/plaintext"
	"github.com/atsresumie/latex-studio/internal/types"
)

var (
	exportIn           string
	exportPayloadFile  string
	exportSettingsFile string
	exportOut          string
	exportDir          string
	exportLabel        string
)

var paginateCmd = &cobra.Command{
	Use:   "paginate",
	Short: "Paginate a render payload and print the page layout as JSON",
	RunE:  runPaginate,
}

var exportDOCXCmd = &cobra.Command{
	Use:   "export-docx",
	Short: "Convert a LaTeX resume into a Word document",
	RunE:  runExportDOCX,
}

var exportTextCmd = &cobra.Command{
	Use:   "export-txt",
	Short: "Export a resume as plain text from a payload or LaTeX",
	RunE:  runExportText,
}

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Capture the paginated preview of a payload as a PDF",
	Long:  "Renders the paginated preview in headless Chrome, captures every page as a JPEG and assembles them into a PDF.",
	RunE:  runExportPDF,
}

var exportBundleCmd = &cobra.Command{
	Use:   "export-bundle",
	Short: "Write the Word, text and compiled PDF exports of a LaTeX resume",
	RunE:  runExportBundle,
}

func init() {
	paginateCmd.Flags().StringVarP(&exportPayloadFile, "payload", "p", "", "RenderPayload JSON file (default: stdin)")
	paginateCmd.Flags().StringVar(&exportSettingsFile, "settings", "", "EditorSettings JSON file")
	paginateCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")

	exportDOCXCmd.Flags().StringVarP(&exportIn, "in", "i", "", "LaTeX input file (default: stdin)")

	exportTextCmd.Flags().StringVarP(&exportIn, "in", "i", "", "LaTeX input file (default: stdin)")
	exportTextCmd.Flags().StringVarP(&exportPayloadFile, "payload", "p", "", "RenderPayload JSON file; takes precedence over --in")

	exportPDFCmd.Flags().StringVarP(&exportPayloadFile, "payload", "p", "", "RenderPayload JSON file (default: stdin)")
	exportPDFCmd.Flags().StringVar(&exportSettingsFile, "settings", "", "EditorSettings JSON file")

	for _, cmd := range []*cobra.Command{exportDOCXCmd, exportTextCmd, exportPDFCmd} {
		cmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: ATSResumie_<label>_<date>.<ext>)")
		cmd.Flags().StringVarP(&exportLabel, "label", "l", "", "Label used in the default file name")
	}

	exportBundleCmd.Flags().StringVarP(&exportIn, "in", "i", "", "LaTeX input file (default: stdin)")
	exportBundleCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Output directory")
	exportBundleCmd.Flags().StringVarP(&exportLabel, "label", "l", "", "Label used in the file names")

	rootCmd.AddCommand(paginateCmd, exportDOCXCmd, exportTextCmd, exportPDFCmd, exportBundleCmd)
}

// exportPath returns --out or the conventional export file name
func exportPath(ext string) string {
	if exportOut != "" {
		return exportOut
	}
	return export.Filename(exportLabel, ext, time.Now())
}

func runPaginate(cmd *cobra.Command, _ []string) error {
	payload, err := readPayload(cmd, exportPayloadFile)
	if err != nil {
		return err
	}
	settings, err := readSettings(exportSettingsFile)
	if err != nil {
		return err
	}
	layout := pagination.Paginate(payload, settings)
	if p := verbosePrinter(cmd); p != nil {
		p.PrintLayout(layout)
	}
	return writeJSON(cmd, exportOut, layout)
}

func runExportDOCX(cmd *cobra.Command, _ []string) error {
	src, err := readInput(cmd, exportIn)
	if err != nil {
		return err
	}
	data, err := export.NewExporter(nil, nil).DOCX(src)
	if err != nil {
		return err
	}
	return writeOutput(cmd, exportPath("docx"), data)
}

func runExportText(cmd *cobra.Command, _ []string) error {
	var payload types.RenderPayload
	if exportPayloadFile != "" {
		p, err := readPayload(cmd, exportPayloadFile)
		if err != nil {
			return err
		}
		payload = p
	} else {
		src, err := readInput(cmd, exportIn)
		if err != nil {
			return err
		}
		payload = plaintext.DeriveRenderPayloadFromResumeText(src)
	}
	return writeOutput(cmd, exportPath("txt"), export.NewExporter(nil, nil).Text(payload))
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	payload, err := readPayload(cmd, exportPayloadFile)
	if err != nil {
		return err
	}
	settings, err := readSettings(exportSettingsFile)
	if err != nil {
		return err
	}

	exporter := export.NewExporter(newCapturer(appConfig), nil)
	data, err := exporter.PDF(cmd.Context(), payload, settings)
	if err != nil {
		return err
	}
	return writeOutput(cmd, exportPath("pdf"), data)
}

func runExportBundle(cmd *cobra.Command, _ []string) error {
	src, err := readInput(cmd, exportIn)
	if err != nil {
		return err
	}

	client, cleanup, err := newCompiler(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer cleanup()

	artifacts, err := export.NewExporter(nil, client).Bundle(cmd.Context(), src, exportLabel, time.Now())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, a := range artifacts {
		if err := writeOutput(cmd, filepath.Join(exportDir, a.Filename), a.Data); err != nil {
			return err
		}
	}
	return nil
}
