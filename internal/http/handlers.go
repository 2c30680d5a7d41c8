package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/exports"
	"github.com/mauv0809/halo-league-export/internal/resolver"
	"github.com/mauv0809/halo-league-export/internal/table"
)

const defaultListLimit = 20

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ExportHandler exports a match as CSV, or as a text table with format=table.
func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "Missing matchID query parameter", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		lookups, err := s.LoadLookups(r.Context())
		if err != nil {
			log.Error("Failed to load lookups", "error", err)
			http.Error(w, "Failed to load draft or medal data", http.StatusInternalServerError)
			return
		}

		result, err := s.Processor.Export(r.Context(), matchID, lookups, isDryRun)
		if err != nil {
			log.Error("Failed to export match", "matchID", matchID, "error", err)
			var resErr *resolver.ResolutionError
			if errors.As(err, &resErr) {
				http.Error(w, "Failed to resolve player identities", http.StatusBadGateway)
				return
			}
			http.Error(w, "Failed to export match", http.StatusInternalServerError)
			return
		}

		if result.Export.ID != "" {
			w.Header().Set("X-Export-ID", result.Export.ID)
		}
		if formatFromContext(r) == formatTable {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			if err := result.Table.Render(w); err != nil {
				log.Error("Failed to render table", "error", err)
			}
			return
		}
		writeCSV(w, matchID, result.Table)
	}
}

// ListExportsHandler lists the most recent exports as JSON.
func (s *Server) ListExportsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultListLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 {
				log.Warn("Invalid 'limit' parameter provided. Using default.", "limit_param", limitStr)
			} else {
				limit = parsed
			}
		}

		list, err := s.Store.ListExports(limit)
		if err != nil {
			log.Error("Failed to list exports", "error", err)
			http.Error(w, "Failed to list exports", http.StatusInternalServerError)
			return
		}

		resp := make([]exportSummary, 0, len(list))
		for _, e := range list {
			resp = append(resp, exportSummary{
				ID:           e.ID,
				MatchID:      e.MatchID,
				CreatedAt:    e.CreatedAt,
				RowCount:     e.RowCount,
				AnomalyCount: e.AnomalyCount,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("Failed to encode exports", "error", err)
		}
	}
}

// GetExportHandler returns a stored export as CSV.
func (s *Server) GetExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		export, err := s.Store.GetExport(id)
		if errors.Is(err, exports.ErrNotFound) {
			http.Error(w, "Export not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Failed to get export", "id", id, "error", err)
			http.Error(w, "Failed to get export", http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Export-ID", export.ID)
		writeCSV(w, export.MatchID, &table.Table{Columns: export.Columns, Rows: export.Rows})
	}
}

func writeCSV(w http.ResponseWriter, matchID string, t *table.Table) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", matchID+".csv"))
	if err := t.WriteCSV(w); err != nil {
		log.Error("Failed to write CSV", "matchID", matchID, "error", err)
	}
}
