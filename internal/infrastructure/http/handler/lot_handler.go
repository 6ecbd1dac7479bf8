package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/lots-api/internal/app/dto"
	"github.com/mrops-br/lots-api/internal/app/service"
	"github.com/mrops-br/lots-api/internal/domain"
	"github.com/mrops-br/lots-api/internal/infrastructure/http/response"
)

// LotHandler handles HTTP requests for lots
type LotHandler struct {
	service *service.LotService
	logger  *slog.Logger
}

// NewLotHandler creates a new lot handler
func NewLotHandler(service *service.LotService, logger *slog.Logger) *LotHandler {
	return &LotHandler{
		service: service,
		logger:  logger,
	}
}

// SaveLot handles POST /lots
func (h *LotHandler) SaveLot(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLot(w, r)
	if !ok {
		return
	}

	response.JSON(w, http.StatusCreated, h.service.SaveLot(r.Context(), req))
}

// GetLot handles GET /lots/{position}
func (h *LotHandler) GetLot(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "position")
	position, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid lot position",
			slog.String("position", raw),
		)
		response.Error(w, http.StatusBadRequest, fmt.Errorf("invalid position %q", raw))
		return
	}

	lot, err := h.service.GetLot(r.Context(), position)
	if err != nil {
		if errors.Is(err, domain.ErrPositionOutOfRange) {
			response.Error(w, http.StatusNotFound, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, lot)
}

// ListLots handles GET /lots
func (h *LotHandler) ListLots(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.ListLots(r.Context()))
}

// UpdateLot handles PUT /lots
func (h *LotHandler) UpdateLot(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLot(w, r)
	if !ok {
		return
	}

	response.JSON(w, http.StatusOK, h.service.UpdateLot(r.Context(), req))
}

// DeleteLot handles POST /lots/delete
func (h *LotHandler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLot(w, r)
	if !ok {
		return
	}

	h.service.DeleteLot(r.Context(), req)
	response.NoContent(w)
}

// DeleteAllLots handles DELETE /lots
func (h *LotHandler) DeleteAllLots(w http.ResponseWriter, r *http.Request) {
	h.service.DeleteAllLots(r.Context())
	response.NoContent(w)
}

func (h *LotHandler) decodeLot(w http.ResponseWriter, r *http.Request) (*dto.LotRequest, bool) {
	var req dto.LotRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return nil, false
	}
	return &req, true
}
