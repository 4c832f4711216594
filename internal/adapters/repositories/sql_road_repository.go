package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL-backed implementation of the RoadRepository port (SQLite or Postgres).
type SQLRoadRepository struct{ DB *sql.DB }

func NewSQLRoadRepository(db *sql.DB) *SQLRoadRepository {
	return &SQLRoadRepository{DB: db}
}

// Return all roads in declaration order.
func (s *SQLRoadRepository) ListRoads(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sql road repository: DB is nil")
	}

	query := `
	SELECT road
	FROM roads
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roads: query roads table: %w", err)
	}
	defer rows.Close()

	roads := make([]string, 0, 32)
	for rows.Next() {
		var road string
		if err := rows.Scan(&road); err != nil {
			return nil, fmt.Errorf("list roads: scan row: %w", err)
		}
		roads = append(roads, road)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roads: row iteration: %w", err)
	}

	return roads, nil
}
