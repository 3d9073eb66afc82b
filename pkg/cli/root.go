package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/fixturegen/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	jsonOutput bool
	logLevel   string
	logFormat  string
	logFile    string

	logger    = logging.Nop()
	logCloser io.Closer

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fixturegen",
	Short: "fixturegen generates synthetic records from declarative schemas",
	Long: `fixturegen turns declarative entity schemas into mock and test data.

Entities are described in YAML or JSON documents: named fields with a value
strategy each (random strings, bounded numbers, dates, enums, fakers, nested
entities, computed expressions). Entities can extend each other, and a
document can carry a seed so that runs are reproducible.`,
	SilenceUsage:       true,
	SilenceErrors:      true, // We handle errors in Main()
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogFile,
}

// Main runs the command line and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// Execute runs the command line and exits. It is called by main.main().
func Execute() {
	os.Exit(Main())
}

func setupLogging(cmd *cobra.Command, args []string) error {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(logLevel)
	cfg.Format = logging.ParseFormat(logFormat)

	handler := logging.Handler(cfg)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logCloser = f

		fileCfg := cfg
		fileCfg.Output = f
		fileCfg.Format = logging.FormatJSON
		handler = logging.Tee(handler, logging.Handler(fileCfg))
	}

	logger = logging.Component(slog.New(handler), cmd.Name())
	return nil
}

func closeLogFile(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append logs to this file")
}
