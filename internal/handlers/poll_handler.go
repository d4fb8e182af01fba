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

// PollHandler - структура для обработки запросов об опросах.
type PollHandler struct {
	Service *services.PollService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewPollHandler создаёт новый экземпляр PollHandler.
func NewPollHandler(service *services.PollService, logger *log.Logger, timeout time.Duration) *PollHandler {
	return &PollHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

func pollViews(polls []models.Poll) []models.PollView {
	views := make([]models.PollView, 0, len(polls))
	for _, p := range polls {
		views = append(views, models.NewPollView(p))
	}
	return views
}

// CreatePoll обрабатывает запросы для создания опроса.
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var pollReq models.PollRequest
	if err := utils.DecodeJSON(r, &pollReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.Service.Create(ctx, pollReq)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to create poll")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusCreated, IDResponse{ID: id})
}

// GetUserPolls обрабатывает запросы для получения опросов пользователя.
func (h *PollHandler) GetUserPolls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userId := r.URL.Query().Get("userId")
	role := models.Role(r.URL.Query().Get("role"))
	includeClosed, err := utils.ParseBool(r.URL.Query().Get("includeClosed"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if userId == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required parameter: userId")
		return
	}

	polls, err := h.Service.UserPolls(ctx, userId, role, includeClosed)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch polls")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, pollViews(polls))
}

// GetPoll обрабатывает запросы для получения опроса с прогрессом.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	poll, ok, err := h.Service.Get(ctx, r.PathValue("pollId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch poll")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "poll not found")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, models.NewPollView(*poll))
}

// RespondPoll обрабатывает запросы на обязательство фермера по опросу.
func (h *PollHandler) RespondPoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	pollId := r.PathValue("pollId")
	var responseReq models.ResponseRequest
	if err := utils.DecodeJSON(r, &responseReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	poll, ok, err := h.Service.Pledge(ctx, pollId, responseReq)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to respond to poll")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "poll not found")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, models.NewPollView(*poll))
}

// ClosePoll обрабатывает запросы закупщика на закрытие опроса.
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ok, err := h.Service.Close(ctx, r.PathValue("pollId"), r.URL.Query().Get("vendorId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to close poll")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "poll not found or not owned by vendor")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, StatusResponse{Status: string(models.ClosedPoll)})
}

// DeletePoll обрабатывает запросы закупщика на удаление опроса.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only DELETE is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	ok, err := h.Service.Delete(ctx, r.PathValue("pollId"), r.URL.Query().Get("vendorId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to delete poll")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "poll not found or not owned by vendor")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, StatusResponse{Status: "deleted"})
}
