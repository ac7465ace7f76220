package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/document"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
	"github.com/joseph-ayodele/resume-extractor/internal/fields"
	"github.com/joseph-ayodele/resume-extractor/internal/metrics"
	"github.com/joseph-ayodele/resume-extractor/internal/names"
	"github.com/joseph-ayodele/resume-extractor/internal/pipeline"
	"github.com/joseph-ayodele/resume-extractor/internal/report"
	"github.com/joseph-ayodele/resume-extractor/internal/repository"
	"github.com/joseph-ayodele/resume-extractor/internal/textsource"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		out          string
		reportFormat string
		method       string
	)
	cmd := &cobra.Command{
		Use:   "extract [input]",
		Short: "Extract contact fields from one résumé",
		Long: `Extract name, email, mobile phone and social links from one résumé,
print them and write a Field/Value table.

Examples:
  resume-extractor extract "Jane Mary Doe CV.pdf"
  resume-extractor extract cv.html --out fields.csv --report table
  RESUME_OUTPUT_PATH=out.json resume-extractor extract cv.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if len(args) == 1 {
				cfg.InputPath = args[0]
			}
			if out != "" {
				cfg.OutputPath = out
			}
			if reportFormat != "" {
				cfg.Report = reportFormat
			}
			if method != "" {
				cfg.Source.Method = method
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.runExtract(cmd, &cfg)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; extension picks the format (default from config output_path)")
	cmd.Flags().StringVar(&reportFormat, "report", "", "console report: bullets or table")
	cmd.Flags().StringVar(&method, "source-method", "", "PDF reader: native or pdftotext")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, cfg *common.Config) error {
	errStatus := report.Status{W: a.stderr, Decorate: decorate(a.stderr)}
	if cfg.InputPath == "" {
		return errors.New("no input file: pass one or set input_path")
	}
	if constants.MapExtToOutput(filepath.Ext(cfg.OutputPath)) == "" {
		return fmt.Errorf("%w: output %q (use .xlsx, .csv, .json or .yaml)", common.ErrUnsupportedFormat, cfg.OutputPath)
	}
	if _, err := os.Stat(cfg.InputPath); errors.Is(err, os.ErrNotExist) {
		errStatus.NotFound(cfg.InputPath)
		return errReported
	}

	ctx, cancel := common.WithTimeout(cmd.Context(), cfg.RunTimeout)
	defer cancel()

	runner, closeFn := a.buildRunner(cmd, cfg)
	defer closeFn()

	_, err := runner.Run(ctx, cfg.InputPath, cfg.OutputPath, func(res pipeline.Result) {
		if perr := report.Print(a.stdout, cfg.Report, res.Record); perr != nil {
			a.logger.Warn("cli.report.failed", "error", perr)
		}
	})
	a.writeMetrics(runner.Metrics, cfg.Metrics.Textfile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && common.IsSourceUnavailable(err) {
			errStatus.NotFound(cfg.InputPath)
		} else {
			errStatus.Failed(err)
		}
		return errReported
	}

	var size int64
	if info, err := os.Stat(cfg.OutputPath); err == nil {
		size = info.Size()
	}
	report.Status{W: a.stdout, Decorate: decorate(a.stdout)}.Saved(cfg.OutputPath, size)
	return nil
}

// buildRunner wires the extraction pipeline from configuration. The returned
// func releases the history database, if one was opened.
func (a *app) buildRunner(cmd *cobra.Command, cfg *common.Config) (*pipeline.Runner, func()) {
	tx := textsource.NewExtractor(textsource.Config{
		Method:    cfg.Source.Method,
		Pdftotext: cfg.Source.Pdftotext,
		MaxPages:  cfg.Source.MaxPages,

		OCRFallback:   cfg.Source.OCR.Fallback,
		Pdftoppm:      cfg.Source.OCR.Pdftoppm,
		Tesseract:     cfg.Source.OCR.Tesseract,
		TesseractLang: cfg.Source.OCR.Lang,
		DPI:           cfg.Source.OCR.DPI,
	}, a.logger)
	src := extract.NewSourceAdapter(tx, a.logger)

	proc := pipeline.NewProcessor(a.logger, src,
		fields.NewExtractor(fieldRules(cfg.Rules)),
		names.NewResolver(nameConfig(cfg.Rules)),
		document.Options{FoldCompat: cfg.Normalize.FoldCompat},
	)

	closeFn := func() {}
	var runs repository.RunRepository
	if cfg.History.DSN != "" {
		db, err := repository.Open(cmd.Context(), repository.Config{DSN: cfg.History.DSN, DialTimeout: cfg.History.DialTimeout}, a.logger)
		if err != nil {
			// History is best effort; extraction still runs.
			a.logger.Warn("cli.history.unavailable", "error", err)
		} else {
			runs = repository.NewRunRepository(db, a.logger)
			closeFn = db.Close
		}
	}

	var rec *metrics.Recorder
	if cfg.Metrics.Textfile != "" {
		rec = metrics.NewRecorder()
	}
	return pipeline.NewRunner(a.logger, proc, export.NewService(a.logger), runs, rec), closeFn
}

func (a *app) writeMetrics(rec *metrics.Recorder, path string) {
	if rec == nil || path == "" {
		return
	}
	if err := rec.WriteTextfile(path); err != nil {
		a.logger.Warn("cli.metrics.write_failed", "path", path, "error", err)
	}
}

func fieldRules(r common.RulesConfig) fields.Rules {
	return fields.Rules{
		SocialDomains: r.SocialDomains,
		PhoneBoost: fields.PhoneBoostRules{
			CountryCodes:  r.Phone.CountryCodes,
			LeadingDigits: r.Phone.LeadingDigits,
			Bonus:         r.Phone.Bonus,
		},
		PhoneMinDigits: r.Phone.MinDigits,
		PhoneMaxDigits: r.Phone.MaxDigits,
	}
}

func nameConfig(r common.RulesConfig) names.Config {
	cfg := names.DefaultConfig()
	cfg.Blocklist = r.Blocklist
	cfg.TopLines = r.TopLines
	return cfg
}
