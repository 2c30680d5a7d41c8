package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/halo-league-export/internal/draft"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/mauv0809/halo-league-export/internal/medals"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/processor"
	"github.com/mauv0809/halo-league-export/internal/record"
	"github.com/mauv0809/halo-league-export/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportArgs(t *testing.T) {
	assert.Error(t, exportCmd.Args(exportCmd, []string{"match"}))
	assert.Error(t, exportCmd.Args(exportCmd, []string{"match", "out.csv"}))
	assert.NoError(t, exportCmd.Args(exportCmd, []string{"match", "out.csv", "draft.csv"}))
}

func TestPerformGetRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("OK!"))
	}))
	defer srv.Close()
	oldHost := host
	host = srv.URL
	defer func() { host = oldHost }()

	var out bytes.Buffer
	require.NoError(t, performGetRequest(&out, "/health"))
	assert.Contains(t, out.String(), "Status Code: 200")
	assert.Contains(t, out.String(), "OK!")

	out.Reset()
	assert.Error(t, performGetRequest(&out, "/missing"))
}

func TestRenderExports(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, renderExports(&out, nil))
		assert.Equal(t, "No exports recorded.\n", out.String())
	})

	t.Run("lists exports", func(t *testing.T) {
		var out bytes.Buffer
		list := []exports.Export{{ID: "abc", MatchID: "match-1", CreatedAt: 0, RowCount: 8, AnomalyCount: 1}}

		require.NoError(t, renderExports(&out, list))

		assert.Contains(t, out.String(), "abc")
		assert.Contains(t, out.String(), "match-1")
		assert.Contains(t, out.String(), "1970-01-01T00:00:00Z")
	})
}

func newTestProcessor(store *exports.Mock) (*processor.Processor, *haloinfinite.MockClient) {
	client := haloinfinite.NewMockClient()
	client.GetMatchStatsFunc = func(matchID string) (haloinfinite.MatchStats, error) {
		return haloinfinite.MatchStats{
			MatchID: matchID,
			Players: []haloinfinite.PlayerStats{
				{PlayerID: "xuid(1)", Outcome: haloinfinite.OutcomeWin, Core: haloinfinite.CoreStats{Score: 123456789, Kills: 5}},
			},
		}, nil
	}
	res := resolver.NewMock()
	res.ResolveFunc = func(ids []string) (map[string]string, error) {
		return map[string]string{"1": "Chief"}, nil
	}
	return processor.New(client, res, store, nil, metrics.NewMock(), nil), client
}

var testLookups = processor.Lookups{Medals: medals.Table{}, Draft: draft.Table{}}

func TestRunExport(t *testing.T) {
	t.Run("writes the sheet and records the export", func(t *testing.T) {
		store := exports.NewMock()
		proc, _ := newTestProcessor(store)
		outputPath := filepath.Join(t.TempDir(), "out.csv")

		require.NoError(t, runExport(context.Background(), proc, "m1", testLookups, outputPath, false, false, &bytes.Buffer{}))

		f, err := os.Open(outputPath)
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, record.Columns, rows[0])
		assert.Equal(t, "Chief", rows[1][0])
		assert.Len(t, store.SaveExportCalls, 1)
	})

	t.Run("unwritable output path fails before any side effect", func(t *testing.T) {
		store := exports.NewMock()
		proc, client := newTestProcessor(store)
		outputPath := filepath.Join(t.TempDir(), "missing", "out.csv")

		err := runExport(context.Background(), proc, "m1", testLookups, outputPath, false, false, &bytes.Buffer{})

		assert.ErrorContains(t, err, "failed to create")
		assert.Empty(t, store.SaveExportCalls)
		assert.Empty(t, client.GetMatchStatsCalls)
	})

	t.Run("failed export leaves an existing sheet untouched", func(t *testing.T) {
		dir := t.TempDir()
		outputPath := filepath.Join(dir, "out.csv")
		require.NoError(t, os.WriteFile(outputPath, []byte("previous"), 0o644))
		store := exports.NewMock()
		proc, client := newTestProcessor(store)
		client.GetMatchStatsFunc = func(string) (haloinfinite.MatchStats, error) {
			return haloinfinite.MatchStats{}, errors.New("not found")
		}

		err := runExport(context.Background(), proc, "m1", testLookups, outputPath, false, false, &bytes.Buffer{})

		assert.Error(t, err)
		content, readErr := os.ReadFile(outputPath)
		require.NoError(t, readErr)
		assert.Equal(t, "previous", string(content))
		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Len(t, entries, 1, "temp file should be removed")
	})

	t.Run("prints the summary table when asked", func(t *testing.T) {
		proc, _ := newTestProcessor(exports.NewMock())
		var out bytes.Buffer

		require.NoError(t, runExport(context.Background(), proc, "m1", testLookups, filepath.Join(t.TempDir(), "out.csv"), true, true, &out))

		assert.Contains(t, out.String(), "Chief")
	})
}
