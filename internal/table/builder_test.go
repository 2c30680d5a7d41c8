package table

import (
	"bytes"
	"encoding/csv"
	"slices"
	"testing"

	"github.com/mauv0809/halo-league-export/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(t *testing.T, tbl *Table, row int, name string) string {
	t.Helper()
	i := slices.Index(tbl.Columns, name)
	require.GreaterOrEqual(t, i, 0, name)
	return tbl.Rows[row][i]
}

func TestBuild(t *testing.T) {
	t.Run("winners first and stable for ties", func(t *testing.T) {
		records := []record.Record{
			{Gamertag: "P1", Wins: 0},
			{Gamertag: "P2", Wins: 1},
			{Gamertag: "P3", Wins: 0},
		}

		tbl, err := Build(records)

		require.NoError(t, err)
		require.Equal(t, 3, tbl.Len())
		assert.Equal(t, "P2", col(t, tbl, 0, "PlayerId"))
		assert.Equal(t, "P1", col(t, tbl, 1, "PlayerId"))
		assert.Equal(t, "P3", col(t, tbl, 2, "PlayerId"))
		assert.Equal(t, "P1", records[0].Gamertag, "input must not be reordered")
	})

	t.Run("all losers keep original order", func(t *testing.T) {
		tbl, err := Build([]record.Record{{Gamertag: "A"}, {Gamertag: "B"}, {Gamertag: "C"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, []string{
			col(t, tbl, 0, "PlayerId"), col(t, tbl, 1, "PlayerId"), col(t, tbl, 2, "PlayerId"),
		})
	})

	t.Run("scores are zero padded to nine characters", func(t *testing.T) {
		tbl, err := Build([]record.Record{{Score: 123456789}, {Score: 42}, {Score: 0}})
		require.NoError(t, err)
		assert.Equal(t, "123456789", col(t, tbl, 0, "Score"))
		assert.Equal(t, "000000042", col(t, tbl, 1, "Score"))
		assert.Equal(t, "000000000", col(t, tbl, 2, "Score"))
	})

	t.Run("oversized score fails", func(t *testing.T) {
		_, err := Build([]record.Record{{Gamertag: "P1", Score: 1_000_000_000}})
		assert.Error(t, err)
	})

	t.Run("empty input gives empty table", func(t *testing.T) {
		tbl, err := Build(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, record.Columns, tbl.Columns)
	})
}

func TestWriteCSV(t *testing.T) {
	tbl, err := Build([]record.Record{{Gamertag: "Chief", Wins: 1, Score: 7}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, record.Columns, rows[0])
	assert.Equal(t, "Chief", rows[1][0])
	assert.Equal(t, "000000007", rows[1][slices.Index(record.Columns, "Score")])
}

func TestRender(t *testing.T) {
	tbl, err := Build([]record.Record{{Gamertag: "Chief", Wins: 1}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Contains(t, buf.String(), "Chief")
}
