package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSheet(t *testing.T) {
	t.Run("takes the match id from the sheet", func(t *testing.T) {
		sheet := "PlayerId,Score,MatchID\nChief,123456789,abc\nArbiter,000000042,abc\n"

		export, err := readSheet(strings.NewReader(sheet), "file-name")

		require.NoError(t, err)
		assert.Equal(t, "abc", export.MatchID)
		assert.Equal(t, []string{"PlayerId", "Score", "MatchID"}, export.Columns)
		assert.Len(t, export.Rows, 2)
		assert.Equal(t, "000000042", export.Rows[1][1])
	})

	t.Run("falls back to the file name", func(t *testing.T) {
		export, err := readSheet(strings.NewReader("PlayerId\nChief\n"), "file-name")

		require.NoError(t, err)
		assert.Equal(t, "file-name", export.MatchID)
	})

	t.Run("rejects an empty sheet", func(t *testing.T) {
		_, err := readSheet(strings.NewReader(""), "file-name")

		assert.Error(t, err)
	})
}
