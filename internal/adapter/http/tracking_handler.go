package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oakfield/doortrack/internal/adapter/logger"
	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// TrackingHandler serves the read-only views: job list, order detail,
// station catalog and the full-dataset export.
type TrackingHandler struct {
	service interfaces.TrackingService
	store   interfaces.OrderStore
	logger  logger.Logger
}

func NewTrackingHandler(service interfaces.TrackingService, store interfaces.OrderStore, lgr logger.Logger) *TrackingHandler {
	return &TrackingHandler{
		service: service,
		store:   store,
		logger:  lgr,
	}
}

// ListOrders returns the summary rows, optionally filtered by ?search=
// (SOP substring).
func (h *TrackingHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	rows, err := h.service.OrderSummaryRows(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("list_failed", "Failed to build summary rows", "", nil, err)
		respondError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if rows == nil {
		rows = []interfaces.SummaryRow{}
	}
	respondJSON(w, http.StatusOK, rows)
}

// OrderDetail serves ?sop=&rating=; both parameters are required.
func (h *TrackingHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	q := r.URL.Query()
	detail, err := h.service.OrderDetail(r.Context(), q.Get("sop"), q.Get("rating"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			respondError(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, domain.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, err.Error(), nil)
		default:
			h.logger.Error("detail_failed", "Failed to build order detail", "", nil, err)
			respondError(w, http.StatusInternalServerError, "Internal server error", nil)
		}
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *TrackingHandler) Stations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}
	respondJSON(w, http.StatusOK, domain.StationCatalog)
}

// Export streams the current dataset as pretty-printed JSON, offered as a
// download named test.json so it can be re-imported as seed data.
func (h *TrackingHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	data, err := json.MarshalIndent(h.store.Snapshot(), "", "  ")
	if err != nil {
		h.logger.Error("export_failed", "Failed to marshal dataset", "", nil, err)
		respondError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="test.json"`)
	w.Write(data)
}
