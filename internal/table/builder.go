// Package table turns assembled records into the exported table.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/mauv0809/halo-league-export/internal/record"
	"github.com/mauv0809/halo-league-export/internal/score"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Table is an ordered, fully rendered export.
type Table struct {
	Columns []string
	Rows    [][]string
	// Records holds the source records in row order.
	Records []record.Record
}

// Build renders records into rows, winners first. Ties keep their input order.
func Build(records []record.Record) (*Table, error) {
	sorted := slices.Clone(records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Wins > sorted[j].Wins
	})

	scoreIdx := slices.Index(record.Columns, "Score")
	t := &Table{
		Columns: slices.Clone(record.Columns),
		Rows:    make([][]string, 0, len(sorted)),
		Records: sorted,
	}
	for _, r := range sorted {
		row := r.Values()
		padded, err := score.Pad(r.Score)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", r.Gamertag, err)
		}
		row[scoreIdx] = padded
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// WriteCSV writes a header row followed by every row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// Render prints a compact summary of the table for terminals.
func (t *Table) Render(w io.Writer) error {
	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	summary := []string{"PlayerId", "DraftPos", "Wins", "Score", "Goals", "Kills", "Deaths", "KD Ratio", "GameTime"}
	idx := make([]int, len(summary))
	header := make([]any, len(summary))
	for i, col := range summary {
		idx[i] = slices.Index(t.Columns, col)
		header[i] = col
	}
	tbl.Header(header...)

	for _, row := range t.Rows {
		cells := make([]any, len(idx))
		for i, j := range idx {
			if j >= 0 {
				cells[i] = row[j]
			}
		}
		if err := tbl.Append(cells...); err != nil {
			return err
		}
	}
	return tbl.Render()
}
