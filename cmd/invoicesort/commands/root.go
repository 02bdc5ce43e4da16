// Package commands implements the CLI commands for invoicesort.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/invoicesort/internal/logger"
	"github.com/jmylchreest/invoicesort/internal/output"
	"github.com/jmylchreest/invoicesort/pkg/invoicesort"
	"github.com/jmylchreest/invoicesort/pkg/llm"
)

// errMissingFolder is the message printed when no folder is given.
var errMissingFolder = errors.New("please provide a folder path as an argument")

var rootCmd = &cobra.Command{
	Use:   "invoicesort <folder>",
	Short: "Sort a folder of documents into invoices and non-invoices",
	Long: `invoicesort asks a generative model whether each document in a folder is
an invoice, then moves invoices into invoices/ renamed as
Date-Seller-Item.ext and everything else into non-invoices/.

PDF, JPEG, PNG and GIF files are processed; other files are left alone.
All results are written to results.json in the folder.

Examples:
  # Gemini (default), key from GEMINI_API_KEY or .env
  invoicesort ./scans

  # OpenAI with a specific model
  invoicesort ./scans -p openai -m gpt-4o-mini

  # Print the summary as YAML and export a workbook
  invoicesort ./scans --summary-format yaml --xlsx results.xlsx`,
	Args:         folderArg,
	SilenceUsage: true,
	RunE:         runSort,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	pflags := rootCmd.PersistentFlags()
	pflags.String("config", "", "config file (default $HOME/.invoicesort.yaml)")
	pflags.Bool("debug", false, "enable debug logging")
	pflags.BoolP("quiet", "q", false, "suppress progress output")
	pflags.Bool("log-json", false, "emit logs as JSON")

	flags := rootCmd.Flags()

	// Model settings
	flags.StringP("provider", "p", "gemini", "model provider: "+strings.Join(llm.AvailableProviders(), ", "))
	flags.StringP("model", "m", "", "model name (default depends on provider)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")
	flags.Duration("timeout", 0, "per-file model call timeout (0 = none)")
	flags.Bool("strict", true, "request schema-enforced output from the provider")

	// Output settings
	flags.String("summary-format", string(output.FormatTable), "summary format: "+output.FormatList())
	flags.String("xlsx", "", "also export all results to this .xlsx file")

	_ = viper.BindPFlag("config", pflags.Lookup("config"))
	_ = viper.BindPFlag("debug", pflags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", pflags.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", pflags.Lookup("log-json"))
	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("strict", flags.Lookup("strict"))
	_ = viper.BindPFlag("summary_format", flags.Lookup("summary-format"))
	_ = viper.BindPFlag("xlsx", flags.Lookup("xlsx"))
}

func initConfig() {
	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", "error", err)
	}

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".invoicesort")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("INVOICESORT")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// folderArg requires exactly one positional folder argument.
func folderArg(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return errMissingFolder
	case 1:
		return nil
	default:
		return fmt.Errorf("expected a single folder path, got %d arguments", len(args))
	}
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), args[0])
	if err != nil {
		return err
	}

	logger.Init(logger.Options{
		Debug: cfg.Debug,
		Quiet: cfg.Quiet,
		JSON:  cfg.LogJSON,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []invoicesort.Option{
		invoicesort.WithProvider(cfg.Provider),
		invoicesort.WithModel(cfg.Model),
		invoicesort.WithAPIKey(cfg.APIKey),
		invoicesort.WithBaseURL(cfg.BaseURL),
		invoicesort.WithTimeout(cfg.Timeout),
		invoicesort.WithStrictMode(cfg.Strict),
		invoicesort.WithSummary(cmd.OutOrStdout(), output.Format(cfg.SummaryFormat)),
		invoicesort.WithXLSX(cfg.XLSX),
		invoicesort.WithObserver(llm.ObserverFunc(logCall)),
	}
	if !cfg.Quiet {
		opts = append(opts, invoicesort.WithProgressOutput(cmd.ErrOrStderr()))
	}

	s, err := invoicesort.New(opts...)
	if err != nil {
		return err
	}

	res, err := s.Run(ctx, cfg.Folder)
	if err != nil {
		return fmt.Errorf("error processing invoices: %w", err)
	}

	if n := len(res.MoveFailures); n > 0 {
		return fmt.Errorf("%d file(s) could not be moved; see log for details", n)
	}
	return nil
}

// logCall logs every model call at debug level.
func logCall(_ context.Context, e llm.CallEvent) {
	if !logger.Enabled(slog.LevelDebug) {
		return
	}
	if e.Error != nil {
		logger.Debug("model call failed", "provider", e.Provider, "model", e.Model, "duration", e.Duration, "error", e.Error)
		return
	}
	logger.Debug("model call",
		"provider", e.Provider,
		"model", e.Response.Model,
		"duration", e.Duration,
		"attachment_bytes", e.AttachmentBytes,
		"input_tokens", e.Response.Usage.InputTokens,
		"output_tokens", e.Response.Usage.OutputTokens,
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
