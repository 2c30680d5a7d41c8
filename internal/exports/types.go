package exports

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrNotFound is returned when no export matches the query.
var ErrNotFound = errors.New("export not found")

// store handles all database operations for export history.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Export is one stored run of the match export pipeline.
type Export struct {
	ID           string     `json:"id"`
	MatchID      string     `json:"match_id"`
	CreatedAt    int64      `json:"created_at"`
	RowCount     int        `json:"row_count"`
	AnomalyCount int        `json:"anomaly_count"`
	Columns      []string   `json:"columns,omitempty"`
	Rows         [][]string `json:"rows,omitempty"`
}
