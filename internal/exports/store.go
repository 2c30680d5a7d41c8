package exports

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new ExportStore.
func New(db *sql.DB) ExportStore {
	return &store{
		db: db,
	}
}

// SaveExport inserts export, assigning an id and timestamp when they are unset.
func (s *store) SaveExport(export *Export) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if export.ID == "" {
		export.ID = uuid.NewString()
	}
	if export.CreatedAt == 0 {
		export.CreatedAt = time.Now().Unix()
	}
	export.RowCount = len(export.Rows)

	columnsBlob, err := msgpack.Marshal(export.Columns)
	if err != nil {
		return fmt.Errorf("failed to encode columns: %w", err)
	}
	rowsBlob, err := msgpack.Marshal(export.Rows)
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO exports (id, match_id, created_at, row_count, anomaly_count, columns_blob, rows_blob)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, export.ID, export.MatchID, export.CreatedAt, export.RowCount, export.AnomalyCount, columnsBlob, rowsBlob)
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}
	log.Debug("Saved export", "id", export.ID, "matchID", export.MatchID, "rows", export.RowCount)
	return nil
}

// GetExport returns the export with the given id, including its rows.
func (s *store) GetExport(id string) (*Export, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, match_id, created_at, row_count, anomaly_count, columns_blob, rows_blob
		FROM exports WHERE id = ?
	`, id)
	return s.scanExport(row)
}

// GetLatestExport returns the most recent export of matchID, including its rows.
func (s *store) GetLatestExport(matchID string) (*Export, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, match_id, created_at, row_count, anomaly_count, columns_blob, rows_blob
		FROM exports WHERE match_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, matchID)
	return s.scanExport(row)
}

// ListExports returns summaries of the newest exports, without rows.
func (s *store) ListExports(limit int) ([]Export, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, match_id, created_at, row_count, anomaly_count
		FROM exports
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.MatchID, &e.CreatedAt, &e.RowCount, &e.AnomalyCount); err != nil {
			log.Error("Failed to scan export row", "error", err)
			continue
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

// scanExport is a helper function to scan a single export row.
func (s *store) scanExport(scanner interface{ Scan(...any) error }) (*Export, error) {
	var (
		e                     Export
		columnsBlob, rowsBlob []byte
	)
	err := scanner.Scan(&e.ID, &e.MatchID, &e.CreatedAt, &e.RowCount, &e.AnomalyCount, &columnsBlob, &rowsBlob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := msgpack.Unmarshal(columnsBlob, &e.Columns); err != nil {
		return nil, fmt.Errorf("failed to decode columns of export %s: %w", e.ID, err)
	}
	if err := msgpack.Unmarshal(rowsBlob, &e.Rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows of export %s: %w", e.ID, err)
	}
	return &e, nil
}
