package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oakfield/doortrack/internal/adapter/logger"
	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// OrderHandler accepts scan submissions and new-order intake.
type OrderHandler struct {
	scans  interfaces.ScanService
	intake interfaces.IntakeService
	logger logger.Logger
}

func NewOrderHandler(scans interfaces.ScanService, intake interfaces.IntakeService, lgr logger.Logger) *OrderHandler {
	return &OrderHandler{
		scans:  scans,
		intake: intake,
		logger: lgr,
	}
}

type ScanRequest struct {
	SOP       string `json:"sop"`
	Rating    string `json:"rating"`
	User      string `json:"user"`
	Line      string `json:"line"`
	Area      string `json:"area"`
	SubArea   string `json:"sub_area"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

type CreateOrderRequest struct {
	SOP       string `json:"sop"`
	Rating    string `json:"rating"`
	User      string `json:"user"`
	WrittenUp bool   `json:"written_up"`
	Notes     string `json:"notes"`
}

type ScanResponse struct {
	Key     string `json:"key"`
	Message string `json:"message"`
	Flag    string `json:"flag_changed,omitempty"`
}

type CreateOrderResponse struct {
	Key       string `json:"key"`
	Message   string `json:"message"`
	WrittenUp string `json:"written_up"`
}

// ErrorResponse is the error body. Prefill carries the scanned fields on
// an unknown-order response so the client can open the create flow with
// them filled in.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Prefill *PrefillPayload `json:"prefill,omitempty"`
}

type PrefillPayload struct {
	SOP    string `json:"sop"`
	Rating string `json:"rating"`
	User   string `json:"user"`
}

func (h *OrderHandler) SubmitScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.scans.SubmitScan(r.Context(), interfaces.ScanCommand{
		SOP:       req.SOP,
		Rating:    req.Rating,
		User:      req.User,
		Line:      req.Line,
		Area:      req.Area,
		SubArea:   req.SubArea,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	resp := ScanResponse{Key: result.Key, Message: result.Message}
	if result.FlagChanged != domain.FlagNone {
		resp.Flag = result.FlagChanged.String()
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.intake.CreateOrder(r.Context(), interfaces.CreateOrderCommand{
		SOP:       req.SOP,
		Rating:    req.Rating,
		User:      req.User,
		WrittenUp: req.WrittenUp,
		Notes:     req.Notes,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateOrderResponse{
		Key:       result.Key,
		Message:   result.Message,
		WrittenUp: result.Order.WrittenUp.String(),
	})
}

// respondDomainError maps service errors onto statuses. Every one of them
// is recoverable on the client side.
func (h *OrderHandler) respondDomainError(w http.ResponseWriter, err error) {
	var notFound *domain.OrderNotFoundError
	switch {
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, notFound.Error(), &PrefillPayload{
			SOP:    notFound.SOP,
			Rating: notFound.Rating,
			User:   notFound.User,
		})
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrDuplicateOrder), errors.Is(err, domain.ErrTransitionRejected):
		respondError(w, http.StatusConflict, err.Error(), nil)
	default:
		h.logger.Error("request_failed", "Unhandled service error", "", nil, err)
		respondError(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string, prefill *PrefillPayload) {
	respondJSON(w, status, ErrorResponse{Error: message, Prefill: prefill})
}
