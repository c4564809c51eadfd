package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atsresumie/latex-studio/internal/config"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key",
	Short: "Hash a service API key for API_KEY_HASHES",
	Long:  "Reads the key from stdin and prints its bcrypt hash using BCRYPT_COST.",
	RunE:  runHashKey,
}

func init() {
	rootCmd.AddCommand(hashKeyCmd)
}

func runHashKey(cmd *cobra.Command, _ []string) error {
	key, err := readInput(cmd, "")
	if err != nil {
		return err
	}
	keyConfig, err := config.NewAPIKeyConfig()
	if err != nil {
		return err
	}
	hash, err := keyConfig.HashAPIKey(strings.TrimSpace(key))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return err
}
