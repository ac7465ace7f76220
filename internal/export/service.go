package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/record"
)

// Sink persists a record at a path.
type Sink interface {
	Write(ctx context.Context, rec record.Record, path string) error
}

type encoder func(rec record.Record) ([]byte, error)

// Service is a Sink that picks the encoder from the output file extension.
type Service struct {
	encoders map[string]encoder
	logger   *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		encoders: map[string]encoder{
			constants.XLSX: EncodeXLSX,
			constants.CSV:  EncodeCSV,
			constants.JSON: EncodeJSON,
			constants.YAML: EncodeYAML,
		},
		logger: logger,
	}
}

// Encode renders rec in the format implied by path's extension.
func (s *Service) Encode(rec record.Record, path string) ([]byte, string, error) {
	format := constants.MapExtToOutput(filepath.Ext(path))
	enc, ok := s.encoders[format]
	if !ok {
		return nil, "", common.NewAppError(common.CodeSink, path,
			fmt.Errorf("%w: output extension %q", common.ErrUnsupportedFormat, filepath.Ext(path)))
	}
	b, err := enc(rec)
	if err != nil {
		return nil, format, common.NewAppError(common.CodeSink, path, fmt.Errorf("%w: encode %s: %w", common.ErrSinkWrite, format, err))
	}
	return b, format, nil
}

// Write encodes rec and writes it to path. The parent directory must exist.
func (s *Service) Write(ctx context.Context, rec record.Record, path string) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}

	b, format, err := s.Encode(rec, path)
	if err != nil {
		s.logger.Error("export.encode.failed", "path", path, "error", err)
		return err
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if err == nil {
			err = errors.New("not a directory")
		}
		s.logger.Error("export.write.failed", "path", path, "error", err)
		return common.NewAppError(common.CodeSink, path, fmt.Errorf("%w: output directory %q: %w", common.ErrSinkWrite, dir, err))
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		s.logger.Error("export.write.failed", "path", path, "error", err)
		return common.NewAppError(common.CodeSink, path, fmt.Errorf("%w: %w", common.ErrSinkWrite, err))
	}

	s.logger.Info("export.write.ok",
		"path", path,
		"format", format,
		"bytes", len(b),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
