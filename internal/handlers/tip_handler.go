package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/services"
	"github.com/senyabanana/farm-commons/internal/utils"
)

// TipHandler - структура для обработки запросов о советах фермерам.
type TipHandler struct {
	Service *services.TipService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewTipHandler создаёт новый экземпляр TipHandler.
func NewTipHandler(service *services.TipService, logger *log.Logger, timeout time.Duration) *TipHandler {
	return &TipHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// AddTip обрабатывает запросы на публикацию совета.
func (h *TipHandler) AddTip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var tipReq models.FarmingTipRequest
	if err := utils.DecodeJSON(r, &tipReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.Service.Add(ctx, tipReq)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to add farming tip")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusCreated, IDResponse{ID: id})
}

// GetTips обрабатывает запросы для получения советов, при необходимости по категории.
func (h *TipHandler) GetTips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var (
		tips []models.FarmingTip
		err  error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		tips, err = h.Service.ByCategory(ctx, category)
	} else {
		tips, err = h.Service.All(ctx)
	}
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch farming tips")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, tips)
}

// LikeTip обрабатывает запросы на отметку совета.
func (h *TipHandler) LikeTip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ok, err := h.Service.Like(ctx, r.PathValue("tipId"), r.URL.Query().Get("userId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to like farming tip")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "tip not found or already liked by user")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, StatusResponse{Status: "liked"})
}
