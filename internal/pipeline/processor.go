package pipeline

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/document"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
	"github.com/joseph-ayodele/resume-extractor/internal/fields"
	"github.com/joseph-ayodele/resume-extractor/internal/names"
	"github.com/joseph-ayodele/resume-extractor/internal/record"
)

// Result is everything one extraction produced.
type Result struct {
	RunID      uuid.UUID
	Path       string
	Record     record.Record
	Document   document.Document
	NameSource constants.NameSource
	Pages      int
	SourceType string
	Method     string
	Warnings   []string
	Duration   time.Duration
}

// Processor reads one document and turns it into a Record.
type Processor struct {
	Logger    *slog.Logger
	Source    extract.TextSource
	Fields    *fields.Extractor
	Names     *names.Resolver
	Normalize document.Options
}

func NewProcessor(logger *slog.Logger, src extract.TextSource, fx *fields.Extractor, nr *names.Resolver, opts document.Options) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Source: src, Fields: fx, Names: nr, Normalize: opts}
}

// ProcessFile runs read -> normalize -> extract -> resolve -> assemble ->
// validate for path. A missing or unreadable source is the only expected
// error; absent fields simply stay empty.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	res := Result{Path: path, RunID: runIDFrom(ctx)}

	if _, err := os.Stat(path); err != nil {
		p.Logger.Error("processor.source.missing", "path", path, "err", err)
		return res, common.SourceUnavailable(path, err)
	}

	text, err := p.Source.Read(ctx, path)
	if err != nil {
		p.Logger.Error("processor.source.failed", "path", path, "err", err)
		return res, err
	}
	res.Pages = text.PageCount()
	res.SourceType = text.SourceType
	res.Method = text.Method
	res.Warnings = text.Warnings

	doc := document.New(text.Pages, p.Normalize)
	res.Document = doc
	p.Logger.Info("processor.source.ok",
		"run_id", res.RunID,
		"path", path,
		"method", text.Method,
		"pages", res.Pages,
		"lines", len(doc.Lines()),
		"chars", len(doc.Flat()),
	)

	// Email needs no line structure; phone and link patterns stop at line ends.
	full := doc.FullText()
	email := p.Fields.Email(doc.Flat())
	ex := record.Extracted{
		Email:       email,
		Phone:       p.Fields.Phone(full),
		SocialLinks: p.Fields.SocialLinks(full),
	}

	if cand, ok := p.Names.Resolve(names.Evidence{Filename: path, Lines: doc.Lines(), Email: email}); ok {
		ex.Name = names.Decompose(cand.Tokens)
		res.NameSource = cand.Source
		p.Logger.Debug("processor.name.resolved", "source", cand.Source, "tokens", len(cand.Tokens), "score", cand.Score)
	} else {
		p.Logger.Debug("processor.name.none", "path", path)
	}

	rec := record.Assemble(ex)
	if err := record.Validate(rec); err != nil {
		// A shape mismatch is a warning; only a missing source is fatal.
		p.Logger.Warn("processor.validate.failed", "path", path, "err", err)
		res.Warnings = append(res.Warnings, err.Error())
	}
	res.Record = rec
	res.Duration = time.Since(start)

	p.Logger.Info("processor.extract.ok",
		"run_id", res.RunID,
		"fields_found", rec.Found(),
		"name_source", string(res.NameSource),
		"social_links", len(ex.SocialLinks),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func runIDFrom(ctx context.Context) uuid.UUID {
	if id, err := uuid.Parse(common.RunIDFromContext(ctx)); err == nil {
		return id
	}
	return uuid.Nil
}
