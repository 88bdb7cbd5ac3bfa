// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	Long: `Config prints the run configuration after applying the config file,
PAPER_AGENT_* environment variables, and flags on top of the defaults.`,
	RunE: runConfig,
}

func init() {
	addSearchFlags(configCmd)
	addAcquireFlags(configCmd)
	addExtractFlags(configCmd)
	addAIFlags(configCmd)
	addReportFlags(configCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out, err := yaml.Marshal(resolveRunConfig(""))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
