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

// MarketHandler - структура для обработки запросов о рыночных ценах.
type MarketHandler struct {
	Service *services.MarketService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewMarketHandler создаёт новый экземпляр MarketHandler.
func NewMarketHandler(service *services.MarketService, logger *log.Logger, timeout time.Duration) *MarketHandler {
	return &MarketHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// AddPrice обрабатывает запросы на публикацию цены.
func (h *MarketHandler) AddPrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var priceReq models.MarketPriceRequest
	if err := utils.DecodeJSON(r, &priceReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.Service.Add(ctx, priceReq)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to add market price")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusCreated, IDResponse{ID: id})
}

// GetLatestPrices обрабатывает запросы для получения последних цен.
func (h *MarketHandler) GetLatestPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limit, err := utils.ParseLimit(r.URL.Query().Get("limit"), services.DefaultPriceLimit)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	prices, err := h.Service.Latest(ctx, limit)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch market prices")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, prices)
}

// GetProductPrices обрабатывает запросы для получения цен на продукт.
func (h *MarketHandler) GetProductPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	prices, err := h.Service.ByProduct(ctx, r.PathValue("product"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch market prices")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, prices)
}

// GetVendorPrices обрабатывает запросы для получения цен закупщика.
func (h *MarketHandler) GetVendorPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	prices, err := h.Service.ByVendor(ctx, r.PathValue("vendorId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch market prices")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, prices)
}
