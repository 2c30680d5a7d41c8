package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/mauv0809/halo-league-export/internal/database"
	"github.com/mauv0809/halo-league-export/internal/draft"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/mauv0809/halo-league-export/internal/medals"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/processor"
	"github.com/mauv0809/halo-league-export/internal/record"
	"github.com/mauv0809/halo-league-export/internal/resolver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	client   *haloinfinite.MockClient
	resolver *resolver.Mock
	store    exports.ExportStore
}

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	store := exports.New(db)
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	client := haloinfinite.NewMockClient()
	client.GetMatchStatsFunc = func(matchID string) (haloinfinite.MatchStats, error) {
		return haloinfinite.MatchStats{
			MatchID: matchID,
			Players: []haloinfinite.PlayerStats{
				{PlayerID: "xuid(2)", Outcome: haloinfinite.OutcomeLoss, Core: haloinfinite.CoreStats{Score: 42}},
				{PlayerID: "xuid(1)", Outcome: haloinfinite.OutcomeWin, Core: haloinfinite.CoreStats{Score: 123456789}},
			},
		}, nil
	}
	res := resolver.NewMock()
	res.ResolveFunc = func(ids []string) (map[string]string, error) {
		return map[string]string{"1": "Chief", "2": "Arbiter"}, nil
	}

	proc := processor.New(client, res, store, nil, metricsSvc, nil)
	loadLookups := func(ctx context.Context) (processor.Lookups, error) {
		return processor.Lookups{Medals: medals.Table{}, Draft: draft.Table{"Chief": draft.NewPosition("1")}}, nil
	}
	server := NewServer(store, metricsSvc, metricsHandler, config.Config{}, proc, loadLookups)
	return &testServer{Server: server, client: client, resolver: res, store: store}
}

func serve(s *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	s := setupTestServer(t)

	rr := serve(s.Server, "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestExportHandler(t *testing.T) {
	t.Run("returns the table as CSV and stores it", func(t *testing.T) {
		s := setupTestServer(t)

		rr := serve(s.Server, "/export?matchID=m1")

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
		assert.NotEmpty(t, rr.Header().Get("X-Export-ID"))

		rows, err := csv.NewReader(rr.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, record.Columns, rows[0])
		assert.Equal(t, "Chief", rows[1][0])
		assert.Equal(t, "123456789", rows[1][5])
		assert.Equal(t, "Arbiter", rows[2][0])
		assert.Equal(t, "000000042", rows[2][5])

		list, err := s.store.ListExports(10)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("dry run does not store", func(t *testing.T) {
		s := setupTestServer(t)

		rr := serve(s.Server, "/export?matchID=m1&dry_run=true")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("X-Export-ID"))
		list, err := s.store.ListExports(10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("renders a text table", func(t *testing.T) {
		s := setupTestServer(t)

		rr := serve(s.Server, "/export?matchID=m1&format=table&dry_run=true")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Chief")
	})

	t.Run("requires a match id", func(t *testing.T) {
		s := setupTestServer(t)

		rr := serve(s.Server, "/export")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("maps resolution failures to bad gateway", func(t *testing.T) {
		s := setupTestServer(t)
		s.resolver.ResolveFunc = func(ids []string) (map[string]string, error) {
			return nil, &resolver.ResolutionError{Requested: len(ids), Err: errors.New("timeout")}
		}

		rr := serve(s.Server, "/export?matchID=m1")

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("reports fetch failures", func(t *testing.T) {
		s := setupTestServer(t)
		s.client.GetMatchStatsFunc = func(string) (haloinfinite.MatchStats, error) {
			return haloinfinite.MatchStats{}, errors.New("not found")
		}

		rr := serve(s.Server, "/export?matchID=m1")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestExportsHandlers(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusOK, serve(s.Server, "/export?matchID=m1").Code)
	require.Equal(t, http.StatusOK, serve(s.Server, "/export?matchID=m2").Code)

	rr := serve(s.Server, "/exports?limit=1")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []exportSummary
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].RowCount)

	rr = serve(s.Server, "/exports/"+list[0].ID)
	require.Equal(t, http.StatusOK, rr.Code)
	rows, err := csv.NewReader(rr.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rr = serve(s.Server, "/exports/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusOK, serve(s.Server, "/export?matchID=m1").Code)

	rr := serve(s.Server, "/metrics")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "halo_matches_exported_total")
}
