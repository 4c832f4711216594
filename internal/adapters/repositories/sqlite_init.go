package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"parcel-robot-sim/internal/domain"
	"strconv"
)

// Dialect selects SQL syntax differences between the supported databases.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// DialectFor maps a database/sql driver name to its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite":
		return SQLite, nil
	case "pgx":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("dialect: unsupported driver %q", driver)
	}
}

// placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Initialize the database schema.
func InitSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRoadsQuery := `
	CREATE TABLE IF NOT EXISTS roads (
		position INTEGER PRIMARY KEY,
		road TEXT NOT NULL
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        topology TEXT NOT NULL,
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        route TEXT NOT NULL,
        hops INTEGER NOT NULL,
        PRIMARY KEY (topology, origin, destination)
    );
	`

	createComparisonsQuery := `
	CREATE TABLE IF NOT EXISTS comparisons (
        run_id TEXT PRIMARY KEY,
        samples INTEGER NOT NULL,
        ran_at TEXT NOT NULL
    );
	`

	createComparisonResultsQuery := `
	CREATE TABLE IF NOT EXISTS comparison_results (
        run_id TEXT NOT NULL REFERENCES comparisons(run_id),
        position INTEGER NOT NULL,
        policy TEXT NOT NULL,
        total_turns INTEGER NOT NULL,
        average_turns REAL NOT NULL,
        PRIMARY KEY (run_id, position)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_comparisons_ran_at
    ON comparisons(ran_at);
	`

	statements := []string{
		createRoadsQuery,
		createRouteCacheQuery,
		createComparisonsQuery,
		createComparisonResultsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the stored road list with roads, keeping their order.
// Every road must parse as "<from>-<to>".
func SeedRoads(ctx context.Context, db *sql.DB, d Dialect, roads []string) error {
	if db == nil {
		return errors.New("seed roads: DB is nil")
	}

	// Validate everything before touching the table.
	if _, err := domain.ParseTopology(roads); err != nil {
		return fmt.Errorf("seed roads: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed roads: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roads;`); err != nil {
		return fmt.Errorf("seed roads: clear roads: %w", err)
	}

	query := fmt.Sprintf(`
	INSERT INTO roads (
		position,
		road
	)
	VALUES (%s, %s);
	`, d.placeholder(1), d.placeholder(2))
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed roads: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range roads {
		if _, err := stmt.ExecContext(ctx, i+1, r); err != nil {
			return fmt.Errorf("seed roads: insert road #%d %q: %w", i+1, r, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed roads: commit tx: %w", err)
	}

	return nil
}

// Populate the roads table from a JSON array of "<from>-<to>" strings.
func SeedRoadsFromJSON(ctx context.Context, db *sql.DB, d Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed roads: read %q: %w", jsonPath, err)
	}

	var roads []string
	if err := json.Unmarshal(bytes, &roads); err != nil {
		return fmt.Errorf("seed roads: parse json: %w", err)
	}

	return SeedRoads(ctx, db, d, roads)
}
