// Command bloomq classifies questions by Bloom's taxonomy level and builds
// level-reconciled quizzes from source text.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/bloomq/internal/config"
	"github.com/crimson-sun/bloomq/internal/logging"
	"github.com/crimson-sun/bloomq/internal/output"
	"github.com/crimson-sun/bloomq/internal/output/file"
	"github.com/crimson-sun/bloomq/internal/output/multi"
	"github.com/crimson-sun/bloomq/internal/output/stdout"
)

var version = "dev"

// Persistent flag values.
var (
	configPath string
	logLevel   string
	pretty     bool
	verbosity  string
	outPath    string
	tee        bool
)

// cfg is loaded once per invocation by the root PersistentPreRunE.
var cfg config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bloomq: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bloomq",
	Short: "Classify questions by Bloom's taxonomy level",
	Long: `bloomq assigns each question one of the six cognitive levels of Bloom's
revised taxonomy (remembering, understanding, application, analysis,
evaluation, creating) by comparing sentence embeddings with per-level
keyword sets. It can also generate a quiz from source text and correct the
levels the generator declared.

Configuration is read from an optional YAML file (--config) and BLOOMQ_
environment variables; flags override both.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&pretty, "pretty", false, "indent JSON output")
	pf.StringVar(&verbosity, "verbosity", "", "output verbosity: minimal, standard, full")
	pf.StringVar(&outPath, "out", "", "write NDJSON to this file instead of stdout")
	pf.BoolVar(&tee, "tee", false, "with --out, also write to stdout")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(levelsCmd)
}

// loadConfig loads file and environment configuration, applies flag
// overrides and initializes logging.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if flags.Changed("pretty") {
		loaded.Output.Pretty = pretty
	}
	if flags.Changed("verbosity") {
		loaded.Output.Verbosity = verbosity
	}
	if outPath != "" {
		loaded.Output.Format = "file"
		loaded.Output.FilePath = outPath
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	cfg = loaded
	logging.Init(cfg.Output.Format == "stdout" || tee, logging.ParseLevel(cfg.Log.Level))
	return nil
}

// openOutput builds the configured result destination.
func openOutput(cmd *cobra.Command) (output.Output, error) {
	v, err := output.ParseVerbosity(cfg.Output.Verbosity)
	if err != nil {
		return nil, err
	}
	console := stdout.NewWriter(cmd.OutOrStdout(), v, cfg.Output.Pretty)
	if cfg.Output.Format != "file" {
		return console, nil
	}

	f, err := file.New(cfg.Output.FilePath, v, file.WithMaxMB(cfg.Output.FileMaxMB))
	if err != nil {
		return nil, err
	}
	if tee {
		return multi.New(f, console), nil
	}
	return f, nil
}
