package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/mauv0809/halo-league-export/internal/database"
	"github.com/mauv0809/halo-league-export/internal/exports"
)

// The seeder imports stat sheets that were exported before history was kept.
// Usage: seeder <sheet.csv>...
func main() {
	log.Info("Starting export history seeder...")
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seeder <sheet.csv>...")
		os.Exit(2)
	}
	cfg := config.LoadCLI()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	store := exports.New(db)

	startTime := time.Now()
	imported := 0
	for _, path := range os.Args[1:] {
		export, err := loadSheet(path)
		if err != nil {
			log.Error("Skipping sheet", "file", path, "error", err)
			continue
		}
		if _, err := store.GetLatestExport(export.MatchID); err == nil {
			log.Info("Match already recorded, skipping", "file", path, "matchID", export.MatchID)
			continue
		} else if !errors.Is(err, exports.ErrNotFound) {
			log.Fatalf("Failed to look up match %s: %s", export.MatchID, err)
		}
		if err := store.SaveExport(export); err != nil {
			log.Fatalf("Failed to save export for %s: %s", path, err)
		}
		imported++
		log.Info("Imported sheet", "file", path, "matchID", export.MatchID, "rows", export.RowCount)
	}

	log.Info("Seeding complete!", "imported", imported, "duration", time.Since(startTime))
}

func loadSheet(path string) (*exports.Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	export, err := readSheet(f, fallback)
	if err != nil {
		return nil, err
	}
	if info, err := f.Stat(); err == nil {
		export.CreatedAt = info.ModTime().Unix()
	}
	return export, nil
}

// readSheet parses a stat sheet. The match id comes from the MatchID column,
// or fallbackMatchID when the sheet has none.
func readSheet(r io.Reader, fallbackMatchID string) (*exports.Export, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("sheet is empty")
	}

	export := &exports.Export{
		MatchID: fallbackMatchID,
		Columns: records[0],
		Rows:    records[1:],
	}
	if idx := slices.Index(export.Columns, "MatchID"); idx >= 0 && len(export.Rows) > 0 && idx < len(export.Rows[0]) {
		if id := export.Rows[0][idx]; id != "" {
			export.MatchID = id
		}
	}
	return export, nil
}
