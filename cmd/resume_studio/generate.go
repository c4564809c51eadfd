package main

import (
	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/llm"
	"github.com/atsresumie/latex-studio/internal/style"
)

var (
	generateResumeFile string
	generateJobFile    string
	generateNotes      string
	generateStyleFile  string
	generateOut        string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a LaTeX resume tailored to a job description",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateResumeFile, "resume", "r", "", "Resume text or LaTeX file (required)")
	generateCmd.Flags().StringVarP(&generateJobFile, "job", "j", "", "Job description file (required)")
	generateCmd.Flags().StringVar(&generateNotes, "instructions", "", "Extra instructions for the model")
	generateCmd.Flags().StringVarP(&generateStyleFile, "style", "s", "", "StyleConfig JSON file applied to the result")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output file (default: stdout)")
	_ = generateCmd.MarkFlagRequired("resume")
	_ = generateCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	resumeText, err := readInput(cmd, generateResumeFile)
	if err != nil {
		return err
	}
	jobText, err := readInput(cmd, generateJobFile)
	if err != nil {
		return err
	}
	cfg, ok, err := readStyle(generateStyleFile)
	if err != nil {
		return err
	}

	client, err := newGenerator(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	out, err := llm.GenerateTailoredLatex(cmd.Context(), client, llm.TailorRequest{
		ResumeText:     resumeText,
		JobDescription: jobText,
		Instructions:   generateNotes,
	})
	if err != nil {
		return err
	}
	if ok {
		out = style.Apply(out, cfg)
	}
	return writeOutput(cmd, generateOut, []byte(out))
}
