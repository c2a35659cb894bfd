package screening

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/screener/internal/contracts"
)

// RunStore persists screening runs
type RunStore interface {
	SaveRun(ctx context.Context, run *Run) error
}

// Repository handles run history persistence
// ⭐ SSOT: 스크리닝 실행 이력 저장/조회는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new run repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveRun inserts one run
func (r *Repository) SaveRun(ctx context.Context, run *Run) error {
	requestJSON, err := json.Marshal(run.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	query := `
		INSERT INTO screener.runs (
			id, mode, query_text, request, outcome,
			row_count, error_message, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.pool.Exec(ctx, query,
		run.ID, string(run.Mode), run.QueryText, requestJSON, run.Outcome,
		run.RowCount, run.ErrorMessage, run.Duration.Milliseconds(), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID
func (r *Repository) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	query := `
		SELECT id, mode, query_text, request, outcome,
			row_count, error_message, duration_ms, created_at
		FROM screener.runs
		WHERE id = $1
	`

	run, err := scanRun(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// ListRuns retrieves the most recent runs, newest first
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, mode, query_text, request, outcome,
			row_count, error_message, duration_ms, created_at
		FROM screener.runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

func scanRun(row pgx.Row) (*Run, error) {
	var run Run
	var mode string
	var requestJSON []byte
	var durationMs int64

	err := row.Scan(
		&run.ID, &mode, &run.QueryText, &requestJSON, &run.Outcome,
		&run.RowCount, &run.ErrorMessage, &durationMs, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Mode = contracts.Mode(mode)
	run.Duration = msToDuration(durationMs)
	if err := json.Unmarshal(requestJSON, &run.Request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}

	return &run, nil
}
