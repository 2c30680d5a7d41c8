// Package draft loads the league's draft positions, keyed by gamertag.
package draft

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Position is a player's draft slot. It is either a number or a category
// such as "Captain". The zero value is Unknown.
type Position struct {
	value string
}

// Unknown marks a player with no draft entry.
var Unknown = Position{}

// UnknownLabel is how Unknown renders in exports.
const UnknownLabel = "N/A"

// NewPosition wraps a raw draft value. Blank values are Unknown.
func NewPosition(raw string) Position {
	return Position{value: strings.TrimSpace(raw)}
}

// Known reports whether the position came from the draft table.
func (p Position) Known() bool {
	return p.value != ""
}

// Int returns the numeric slot, if the position is numeric.
func (p Position) Int() (int, bool) {
	if !p.Known() {
		return 0, false
	}
	n, err := strconv.Atoi(p.value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p Position) String() string {
	if !p.Known() {
		return UnknownLabel
	}
	return p.value
}

// Table maps gamertags to draft positions.
type Table map[string]Position

// Lookup returns the position for name, or Unknown.
func (t Table) Lookup(name string) Position {
	if p, ok := t[name]; ok {
		return p
	}
	return Unknown
}

const (
	nameColumn     = "PlayerName"
	positionColumn = "DraftPos"
)

// Load reads a CSV file with PlayerName and DraftPos columns.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft file: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft file %s: %w", path, err)
	}
	log.Info("Loaded draft positions", "path", path, "players", len(t))
	return t, nil
}

// Read parses draft positions from CSV.
func Read(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("draft file is empty")
		}
		return nil, err
	}
	nameIdx, posIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) {
		case nameColumn:
			nameIdx = i
		case positionColumn:
			posIdx = i
		}
	}
	if nameIdx < 0 || posIdx < 0 {
		return nil, fmt.Errorf("draft file must have %s and %s columns, got %v", nameColumn, positionColumn, header)
	}

	t := make(Table)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if nameIdx >= len(row) || posIdx >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			continue
		}
		if _, dup := t[name]; dup {
			log.Warn("Duplicate draft entry, keeping the last one", "player", name)
		}
		t[name] = NewPosition(row[posIdx])
	}
	return t, nil
}
