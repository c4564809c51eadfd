package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/style"
)

var (
	styleIn   string
	styleOut  string
	styleFile string
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Read and write the style block of a LaTeX document",
}

var styleApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Inject a StyleConfig into a LaTeX document",
	RunE:  runStyleApply,
}

var styleParseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Recover the StyleConfig of a LaTeX document as JSON",
	RunE:  runStyleParse,
}

var styleValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a LaTeX document is ready to compile",
	RunE:  runStyleValidate,
}

func init() {
	for _, cmd := range []*cobra.Command{styleApplyCmd, styleParseCmd, styleValidateCmd} {
		cmd.Flags().StringVarP(&styleIn, "in", "i", "", "LaTeX input file (default: stdin)")
		styleCmd.AddCommand(cmd)
	}
	styleApplyCmd.Flags().StringVarP(&styleFile, "style", "s", "", "StyleConfig JSON file (required)")
	styleApplyCmd.Flags().StringVarP(&styleOut, "out", "o", "", "Output file (default: stdout)")
	_ = styleApplyCmd.MarkFlagRequired("style")
	styleParseCmd.Flags().StringVarP(&styleOut, "out", "o", "", "Output file (default: stdout)")

	rootCmd.AddCommand(styleCmd)
}

func runStyleApply(cmd *cobra.Command, _ []string) error {
	src, err := readInput(cmd, styleIn)
	if err != nil {
		return err
	}
	cfg, _, err := readStyle(styleFile)
	if err != nil {
		return err
	}

	out := style.Apply(src, cfg)
	if result := style.Validate(out); !result.Valid {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: styled document is not compilable: %s\n", result.Error)
	}
	return writeOutput(cmd, styleOut, []byte(out))
}

func runStyleParse(cmd *cobra.Command, _ []string) error {
	src, err := readInput(cmd, styleIn)
	if err != nil {
		return err
	}
	cfg := style.Parse(src)
	if p := verbosePrinter(cmd); p != nil {
		p.PrintStyle(cfg)
	}
	return writeJSON(cmd, styleOut, cfg)
}

func runStyleValidate(cmd *cobra.Command, _ []string) error {
	src, err := readInput(cmd, styleIn)
	if err != nil {
		return err
	}
	result := style.Validate(src)
	if !result.Valid {
		return fmt.Errorf("invalid document: %s", result.Error)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}
