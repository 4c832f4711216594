package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/ports"
	"time"
)

// SQL-backed implementation of the ComparisonRecorder port.
type SQLComparisonRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLComparisonRepository(db *sql.DB, d Dialect) *SQLComparisonRepository {
	return &SQLComparisonRepository{DB: db, Dialect: d}
}

// Store a comparison report and its per-policy results in one transaction.
func (s *SQLComparisonRepository) RecordComparison(ctx context.Context, report ports.ComparisonReport) error {
	if s.DB == nil {
		return errors.New("sql comparison repository: DB is nil")
	}
	if report.RunID == "" {
		return errors.New("record comparison: run id must not be empty")
	}

	ph := s.Dialect.placeholder

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record comparison: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertRun := fmt.Sprintf(`
	INSERT INTO comparisons (run_id, samples, ran_at)
	VALUES (%s, %s, %s);
	`, ph(1), ph(2), ph(3))
	if _, err := tx.ExecContext(ctx, insertRun, report.RunID, report.Samples, report.RanAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("record comparison %s: insert run: %w", report.RunID, err)
	}

	insertResult := fmt.Sprintf(`
	INSERT INTO comparison_results (run_id, position, policy, total_turns, average_turns)
	VALUES (%s, %s, %s, %s, %s);
	`, ph(1), ph(2), ph(3), ph(4), ph(5))
	stmt, err := tx.PrepareContext(ctx, insertResult)
	if err != nil {
		return fmt.Errorf("record comparison %s: prepare insert: %w", report.RunID, err)
	}
	defer stmt.Close()

	for i, p := range report.Policies {
		if _, err := stmt.ExecContext(ctx, report.RunID, i, p.Policy, p.TotalTurns, p.AverageTurns); err != nil {
			return fmt.Errorf("record comparison %s: insert policy %q: %w", report.RunID, p.Policy, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record comparison %s: commit tx: %w", report.RunID, err)
	}

	return nil
}

// Return the most recent reports, newest first.
func (s *SQLComparisonRepository) ListComparisons(ctx context.Context, limit int) ([]ports.ComparisonReport, error) {
	if s.DB == nil {
		return nil, errors.New("sql comparison repository: DB is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
	SELECT run_id, samples, ran_at
	FROM comparisons
	ORDER BY ran_at DESC, run_id
	LIMIT %s;
	`, s.Dialect.placeholder(1))
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: query comparisons table: %w", err)
	}

	var reports []ports.ComparisonReport
	for rows.Next() {
		var r ports.ComparisonReport
		var ranAt string
		if err := rows.Scan(&r.RunID, &r.Samples, &ranAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("list comparisons: scan row: %w", err)
		}
		r.RanAt, err = time.Parse(time.RFC3339Nano, ranAt)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("list comparisons: parse ran_at %q: %w", ranAt, err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list comparisons: row iteration: %w", err)
	}
	// Close before the per-run queries; sqlite runs on a single connection.
	rows.Close()

	for i := range reports {
		policies, err := s.listResults(ctx, reports[i].RunID)
		if err != nil {
			return nil, err
		}
		reports[i].Policies = policies
	}

	return reports, nil
}

func (s *SQLComparisonRepository) listResults(ctx context.Context, runID string) ([]ports.PolicyTurns, error) {
	query := fmt.Sprintf(`
	SELECT policy, total_turns, average_turns
	FROM comparison_results
	WHERE run_id = %s
	ORDER BY position;
	`, s.Dialect.placeholder(1))
	rows, err := s.DB.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: query results for %s: %w", runID, err)
	}
	defer rows.Close()

	var out []ports.PolicyTurns
	for rows.Next() {
		var p ports.PolicyTurns
		if err := rows.Scan(&p.Policy, &p.TotalTurns, &p.AverageTurns); err != nil {
			return nil, fmt.Errorf("list comparisons: scan result for %s: %w", runID, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comparisons: result iteration for %s: %w", runID, err)
	}

	return out, nil
}
