package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsMiddleware(t *testing.T) {
	var gotDryRun bool
	var gotFormat string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDryRun = isDryRunFromContext(r)
		gotFormat = formatFromContext(r)
	}), paramsMiddleware)

	t.Run("defaults", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export?matchID=m1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, gotDryRun)
		assert.Equal(t, formatCSV, gotFormat)
	})

	t.Run("reads dry run and format", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export?matchID=m1&dry_run=true&format=table&verbose=true", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, gotDryRun)
		assert.Equal(t, formatTable, gotFormat)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		gotFormat = ""
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export?matchID=m1&format=xlsx", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, gotFormat)
	})

	t.Run("context without values", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.False(t, isDryRunFromContext(r))
		assert.Equal(t, formatCSV, formatFromContext(r))
	})
}
