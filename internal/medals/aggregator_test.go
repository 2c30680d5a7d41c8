package medals

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = Table{
	2780740615: "Killing Spree",
	622331684:  "Double Kill",
	1:          "Boxer",
	2:          "Boxer",
}

func TestAggregate(t *testing.T) {
	t.Run("empty input yields empty counts", func(t *testing.T) {
		counts := Aggregate(nil, testTable)
		assert.Empty(t, counts)
		assert.Equal(t, 0, counts.Get("Killing Spree"))
		assert.Equal(t, 0, counts.Get("anything"))
	})

	t.Run("resolves names through the table", func(t *testing.T) {
		counts := Aggregate([]haloinfinite.AwardCount{
			{NameID: 2780740615, Count: 2},
			{NameID: 622331684, Count: 5},
		}, testTable)
		assert.Equal(t, Counts{"Killing Spree": 2, "Double Kill": 5}, counts)
	})

	t.Run("colliding names accumulate", func(t *testing.T) {
		counts := Aggregate([]haloinfinite.AwardCount{
			{NameID: 1, Count: 3},
			{NameID: 2, Count: 4},
		}, testTable)
		assert.Equal(t, 7, counts.Get("Boxer"))
	})

	t.Run("unknown ids get a synthesised name", func(t *testing.T) {
		counts := Aggregate([]haloinfinite.AwardCount{{NameID: 99, Count: 1}}, testTable)
		assert.Equal(t, Counts{"Medal 99": 1}, counts)
	})

	t.Run("nil table synthesises every name", func(t *testing.T) {
		counts := Aggregate([]haloinfinite.AwardCount{{NameID: 622331684, Count: 1}}, nil)
		assert.Equal(t, 1, counts.Get("Medal 622331684"))
	})
}

func TestTableFromMetadata(t *testing.T) {
	table := TableFromMetadata([]haloinfinite.Medal{
		{NameID: 622331684, Name: "Double Kill"},
		{NameID: 5, Name: ""},
	})
	assert.Equal(t, Table{622331684: "Double Kill"}, table)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads a json object", func(t *testing.T) {
		path := filepath.Join(dir, "medals.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"622331684":"Double Kill","2063152177":"Triple Kill"}`), 0o600))

		table, err := LoadTable(path)
		require.NoError(t, err)
		assert.Equal(t, "Double Kill", table.Name(622331684))
		assert.Equal(t, "Triple Kill", table.Name(2063152177))
	})

	t.Run("rejects non numeric ids", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"abc":"Double Kill"}`), 0o600))

		_, err := LoadTable(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}
