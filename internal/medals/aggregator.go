// Package medals turns raw medal ids into named per-player counts.
package medals

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
)

// Table maps medal name ids to display names. It is read-only once built.
type Table map[int64]string

// Counts maps a medal display name to how often it was earned.
type Counts map[string]int

// Get returns the count for name, or 0 if the medal was not earned.
func (c Counts) Get(name string) int {
	return c[name]
}

// Name returns the display name for id, synthesising one for unknown ids.
func (t Table) Name(id int64) string {
	if name, ok := t[id]; ok {
		return name
	}
	return fmt.Sprintf("Medal %d", id)
}

// Aggregate sums awards by display name.
func Aggregate(awards []haloinfinite.AwardCount, table Table) Counts {
	counts := make(Counts, len(awards))
	for _, a := range awards {
		counts[table.Name(a.NameID)] += a.Count
	}
	return counts
}

// TableFromMetadata builds a Table from the medal metadata served by the API.
func TableFromMetadata(medals []haloinfinite.Medal) Table {
	t := make(Table, len(medals))
	for _, m := range medals {
		if m.Name == "" {
			continue
		}
		t[m.NameID] = m.Name
	}
	return t
}

// LoadTable reads a JSON object of {"<name id>": "<display name>"} from path.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read medal table: %w", err)
	}
	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode medal table %s: %w", path, err)
	}
	t := make(Table, len(entries))
	for k, v := range entries {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid medal id %q in %s: %w", k, path, err)
		}
		t[id] = v
	}
	log.Debug("Loaded medal table", "path", path, "medals", len(t))
	return t, nil
}
