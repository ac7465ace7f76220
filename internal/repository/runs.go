package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

const runsTable = "runs"

var runColumns = []string{
	"id", "source_path", "output_path", "status", "started_at",
	"finished_at", "error_message", "name_source", "record_json",
}

type RunRepository interface {
	Start(ctx context.Context, id uuid.UUID, sourcePath, outputPath string) (*entity.Run, error)
	FinishSuccess(ctx context.Context, id uuid.UUID, nameSource string, recordJSON []byte) error
	FinishFailure(ctx context.Context, id uuid.UUID, message string) error
	ListRecent(ctx context.Context, limit int) ([]entity.Run, error)
}

type runRepo struct {
	db  *DB
	log *slog.Logger
}

func NewRunRepository(db *DB, log *slog.Logger) RunRepository {
	if log == nil {
		log = slog.Default()
	}
	return &runRepo{db: db, log: log}
}

func (r *runRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.dialect)
}

func (r *runRepo) Start(ctx context.Context, id uuid.UUID, sourcePath, outputPath string) (*entity.Run, error) {
	run := &entity.Run{
		ID:         id,
		SourcePath: sourcePath,
		OutputPath: outputPath,
		Status:     constants.RunStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	q, args := r.builder().
		Insert(runsTable).
		Columns("id", "source_path", "output_path", "status", "started_at").
		Values(run.ID.String(), run.SourcePath, run.OutputPath, string(run.Status), formatTime(run.StartedAt)).
		Query()
	if err := r.db.drv.Exec(ctx, q, args, nil); err != nil {
		r.log.Error("run start failed", "run_id", id, "err", err)
		return nil, storeErr("insert run", err)
	}
	r.log.Debug("run started", "run_id", id, "source", sourcePath)
	return run, nil
}

func (r *runRepo) FinishSuccess(ctx context.Context, id uuid.UUID, nameSource string, recordJSON []byte) error {
	q, args := r.builder().
		Update(runsTable).
		Set("status", string(constants.RunStatusOK)).
		Set("finished_at", formatTime(time.Now().UTC())).
		Set("name_source", nameSource).
		Set("record_json", string(recordJSON)).
		Where(entsql.EQ("id", id.String())).
		Query()
	if err := r.db.drv.Exec(ctx, q, args, nil); err != nil {
		r.log.Error("run finish(OK) failed", "run_id", id, "err", err)
		return storeErr("finish run", err)
	}
	r.log.Debug("run finished (OK)", "run_id", id)
	return nil
}

func (r *runRepo) FinishFailure(ctx context.Context, id uuid.UUID, message string) error {
	q, args := r.builder().
		Update(runsTable).
		Set("status", string(constants.RunStatusFailed)).
		Set("finished_at", formatTime(time.Now().UTC())).
		Set("error_message", message).
		Where(entsql.EQ("id", id.String())).
		Query()
	if err := r.db.drv.Exec(ctx, q, args, nil); err != nil {
		r.log.Error("run finish(FAILED) failed", "run_id", id, "err", err)
		return storeErr("finish run", err)
	}
	r.log.Warn("run finished (FAILED)", "run_id", id, "error", message)
	return nil
}

func (r *runRepo) ListRecent(ctx context.Context, limit int) ([]entity.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	q, args := r.builder().
		Select(runColumns...).
		From(entsql.Table(runsTable)).
		OrderBy(entsql.Desc("started_at")).
		Limit(limit).
		Query()

	var rows entsql.Rows
	if err := r.db.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, storeErr("list runs", err)
	}
	defer rows.Close()

	var out []entity.Run
	for rows.Next() {
		var (
			id, source, output, status, started string
			finished, errMsg, nameSrc, recJSON  sql.NullString
		)
		if err := rows.Scan(&id, &source, &output, &status, &started, &finished, &errMsg, &nameSrc, &recJSON); err != nil {
			return nil, storeErr("scan run", err)
		}
		run, err := toRun(id, source, output, status, started, finished, errMsg, nameSrc, recJSON)
		if err != nil {
			return nil, storeErr("decode run", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list runs", err)
	}
	return out, nil
}

func toRun(id, source, output, status, started string, finished, errMsg, nameSrc, recJSON sql.NullString) (entity.Run, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return entity.Run{}, err
	}
	startedAt, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return entity.Run{}, err
	}
	run := entity.Run{
		ID:         uid,
		SourcePath: source,
		OutputPath: output,
		Status:     constants.RunStatus(status),
		StartedAt:  startedAt,
		NameSource: nameSrc.String,
	}
	if finished.Valid {
		t, err := time.Parse(time.RFC3339Nano, finished.String)
		if err != nil {
			return entity.Run{}, err
		}
		run.FinishedAt = &t
	}
	if errMsg.Valid {
		msg := errMsg.String
		run.ErrorMessage = &msg
	}
	if recJSON.Valid && recJSON.String != "" {
		run.RecordJSON = []byte(recJSON.String)
	}
	return run, nil
}

// Times are stored as fixed-width RFC 3339 text so ordering works as a string sort.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}

func storeErr(op string, err error) error {
	return common.NewAppError(common.CodeStore, op, fmt.Errorf("%w: %w", common.ErrStore, err))
}
