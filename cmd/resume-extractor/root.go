package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/version"
)

// errReported marks an error already shown to the user; main only sets the exit code.
var errReported = errors.New("error already reported")

// app is the state shared by all subcommands once configuration is loaded.
type app struct {
	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string

	cfg    *common.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "resume-extractor",
		Short: "Extract contact fields from a résumé into a Field/Value table",
		Long: `resume-extractor reads one résumé (PDF, image, HTML, Markdown or plain text),
finds the candidate's name, email, mobile phone and social profile links,
prints them and writes a two-column Field/Value table.

Output format follows the output file extension: .xlsx, .csv, .json or .yaml.`,
		Version:       version.GitRelease,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(
		&a.cfgFile, "config", "", "config file (default: ./resume-extractor.yaml or ~/.resume-extractor/resume-extractor.yaml)",
	)
	root.PersistentFlags().StringVar(
		&a.envFile, "env", ".env", "environment file loaded before configuration",
	)
	root.PersistentFlags().StringVar(
		&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)",
	)
	root.PersistentFlags().StringVar(
		&a.logFormat, "log-format", "", "log format: text or json (overrides config)",
	)

	root.AddCommand(
		newExtractCmd(a),
		newConfigCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads .env and configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()

	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && cmd.Flags().Changed("env") {
			slog.Warn("cli.env.load_failed", "path", a.envFile, "error", err)
		}
	}

	cfg, err := common.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, cfg.Log)
	slog.SetDefault(a.logger)
	return nil
}

func newLogger(w io.Writer, cfg common.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// decorate reports whether w is a terminal, for ✅/❌ markers.
func decorate(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
