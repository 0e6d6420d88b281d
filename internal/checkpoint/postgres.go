package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/sales-simulator/internal/state"
)

// PostgresStore persists checkpoints in PostgreSQL. Runs are tracked in
// sim_runs and the full state snapshot lives in run_checkpoints, one row
// per thread.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (p *PostgresStore) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Save upserts the run record and its latest state snapshot.
func (p *PostgresStore) Save(ctx context.Context, st *state.RunState) error {
	snapshot, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO sim_runs (thread_id, execution_id, status, current_stage, started_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (thread_id) DO UPDATE SET
		   execution_id = $2, status = $3, current_stage = $4, updated_at = NOW()`,
		st.ThreadID, st.ExecutionID, st.Status, st.CurrentStage, st.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", st.ThreadID, err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO run_checkpoints (thread_id, state, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (thread_id) DO UPDATE SET state = $2, updated_at = NOW()`,
		st.ThreadID, snapshot,
	)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint %s: %w", st.ThreadID, err)
	}
	return nil
}

// Load retrieves the latest state snapshot for a thread id.
func (p *PostgresStore) Load(ctx context.Context, threadID string) (*state.RunState, error) {
	var snapshot []byte
	err := p.pool.QueryRow(ctx,
		`SELECT state FROM run_checkpoints WHERE thread_id = $1`,
		threadID,
	).Scan(&snapshot)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load checkpoint %s: %w", threadID, err)
	}

	var st state.RunState
	if err := json.Unmarshal(snapshot, &st); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint %s: %w", threadID, err)
	}
	return &st, nil
}

// List retrieves recent runs, newest first.
func (p *PostgresStore) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.pool.Query(ctx,
		`SELECT thread_id, execution_id, status, COALESCE(current_stage, ''), updated_at
		 FROM sim_runs ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.ThreadID, &s.ExecutionID, &s.Status, &s.CurrentStage, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Delete removes the run and its checkpoint.
func (p *PostgresStore) Delete(ctx context.Context, threadID string) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM sim_runs WHERE thread_id = $1`, threadID)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", threadID, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	// Checkpoint rows cascade from sim_runs, but clean up explicitly in case
	// the schema was created without the foreign key.
	_, err = p.pool.Exec(ctx, `DELETE FROM run_checkpoints WHERE thread_id = $1`, threadID)
	if err != nil {
		return fmt.Errorf("failed to delete checkpoint %s: %w", threadID, err)
	}
	return nil
}
