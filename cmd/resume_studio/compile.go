package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/export"
	"github.com/atsresumie/latex-studio/internal/style"
	"github.com/atsresumie/latex-studio/internal/validation"
)

var (
	compileIn        string
	compileStyleFile string
	compileOut       string
	compileLabel     string
	compilePageLimit int
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a LaTeX resume to PDF through the compile service",
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileIn, "in", "i", "", "LaTeX input file (default: stdin)")
	compileCmd.Flags().StringVarP(&compileStyleFile, "style", "s", "", "StyleConfig JSON file applied before compiling")
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "Output file (default: ATSResumie_<label>_<date>.pdf)")
	compileCmd.Flags().StringVarP(&compileLabel, "label", "l", "", "Label used in the default file name")
	compileCmd.Flags().IntVar(&compilePageLimit, "page-limit", 0, "Fail when the PDF has more pages (0 disables)")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, _ []string) error {
	src, err := readInput(cmd, compileIn)
	if err != nil {
		return err
	}
	cfg, ok, err := readStyle(compileStyleFile)
	if err != nil {
		return err
	}
	if ok {
		src = style.Apply(src, cfg)
	}

	client, cleanup, err := newCompiler(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := client.CompileWithInfo(cmd.Context(), src)
	if err != nil {
		return err
	}
	if p := verbosePrinter(cmd); p != nil {
		p.PrintCompileResult(res)
	}
	if compilePageLimit > 0 {
		if _, err := validation.CheckPageLimit(res.PDF, compilePageLimit); err != nil {
			return err
		}
	}

	out := compileOut
	if out == "" {
		out = export.Filename(compileLabel, "pdf", time.Now())
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Pages: %d (cached: %t)\n", res.Pages, res.Cached)
	return writeOutput(cmd, out, res.PDF)
}
