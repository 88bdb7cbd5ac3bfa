// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-agent CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-agent/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the CLI logger, configured from --log-level before any command runs.
var log = zerolog.Nop()

// rootCmd is the base command for the paper-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-agent",
	Short: "Search arXiv, download papers, and review them with a local model",
	Long: `paper-agent searches the arXiv abstract listing for a keyword, downloads
the matching PDFs, reads each paper's first page, and asks a model served by
Ollama to summarize and score it. Answers are written to a dated report.

The review command runs the whole pipeline. search, acquire, extract, and ask
run single stages.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd.Flags()); err != nil {
			return err
		}
		log = logger.New(viper.GetString("log_level"), os.Stderr)
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug().Str("config", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-agent.yaml or ~/.config/paper-agent/paper-agent.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-agent"))
		}
	}

	viper.SetEnvPrefix("PAPER_AGENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Reading config file:", err)
		}
	}
}

// bindFlags binds every flag of the running command to the viper key of
// the same name with dashes replaced by underscores.
func bindFlags(flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := viper.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("binding flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
