package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"clipsight/internal/analysis"
)

// ErrRunNotFound indicates the requested run does not exist in the catalog.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, title, source_path, artifact_path, status, duration, error_message,
	caption_count, scene_count, per_second_count, background_count, audio_count,
	created_at, updated_at`

// CreateRun inserts a new catalog entry.
func (s *Store) CreateRun(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("create run: nil run")
	}
	return s.execWithRetry(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Title, run.SourcePath, run.ArtifactPath, string(run.Status),
		run.Duration, run.ErrorMessage,
		run.CaptionCount, run.SceneCount, run.PerSecondCount, run.BackgroundCount, run.AudioCount,
		run.CreatedAt.Format(time.RFC3339Nano), run.UpdatedAt.Format(time.RFC3339Nano),
	)
}

// CompleteRun marks a run as completed and records the artifact location and
// per-track counts from the result.
func (s *Store) CompleteRun(ctx context.Context, runID, artifactPath string, result *analysis.Result) error {
	if result == nil {
		return errors.New("complete run: nil result")
	}
	return s.updateRun(ctx, runID, `
		UPDATE runs SET status = ?, artifact_path = ?, duration = ?,
			caption_count = ?, scene_count = ?, per_second_count = ?,
			background_count = ?, audio_count = ?, error_message = '', updated_at = ?
		WHERE id = ?`,
		string(StatusCompleted), artifactPath, result.Duration,
		len(result.Captions), len(result.SceneSegments), len(result.PerSecondDescriptions),
		len(result.BackgroundUpdates), len(result.AudioSegments),
		time.Now().UTC().Format(time.RFC3339Nano), runID,
	)
}

// FailRun marks a run as failed with the supplied message.
func (s *Store) FailRun(ctx context.Context, runID, message string) error {
	return s.updateRun(ctx, runID, `
		UPDATE runs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		string(StatusFailed), message, time.Now().UTC().Format(time.RFC3339Nano), runID,
	)
}

func (s *Store) updateRun(ctx context.Context, runID, query string, args ...any) error {
	ctx = ensureContext(ctx)
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, execErr := s.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// GetRun fetches one run by id.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// ListRuns returns catalog entries newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a catalog entry. The artifact file is the caller's to
// clean up.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	return s.updateRun(ctx, runID, `DELETE FROM runs WHERE id = ?`, runID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var status, createdAt, updatedAt string
	err := row.Scan(
		&run.ID, &run.Title, &run.SourcePath, &run.ArtifactPath, &status,
		&run.Duration, &run.ErrorMessage,
		&run.CaptionCount, &run.SceneCount, &run.PerSecondCount, &run.BackgroundCount, &run.AudioCount,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if run.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &run, nil
}
