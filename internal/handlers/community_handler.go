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

// CommunityHandler - структура для обработки запросов о сообществах и их чатах.
type CommunityHandler struct {
	Service *services.CommunityService
	Chat    *services.ChatService
	Polls   *services.PollService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewCommunityHandler создаёт новый экземпляр CommunityHandler.
func NewCommunityHandler(service *services.CommunityService, chat *services.ChatService, polls *services.PollService, logger *log.Logger, timeout time.Duration) *CommunityHandler {
	return &CommunityHandler{
		Service: service,
		Chat:    chat,
		Polls:   polls,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetCommunity обрабатывает запросы для получения сообщества.
func (h *CommunityHandler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	community, ok, err := h.Service.Get(ctx, r.PathValue("communityId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch community")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "community not found")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, community)
}

// GetMessages обрабатывает запросы для получения чата сообщества.
func (h *CommunityHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	messages, ok, err := h.Chat.Messages(ctx, r.PathValue("communityId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch messages")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "community not found")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, messages)
}

// PostMessage обрабатывает запросы на отправку сообщения в чат сообщества.
func (h *CommunityHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var messageReq models.MessageRequest
	if err := utils.DecodeJSON(r, &messageReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.Chat.Append(ctx, r.PathValue("communityId"), messageReq.UserID, messageReq.UserName, messageReq.UserType, messageReq.Content)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to post message")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "community not found")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusCreated, StatusResponse{Status: "posted"})
}

// GetCommunityPolls обрабатывает запросы для получения опросов сообщества.
func (h *CommunityHandler) GetCommunityPolls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	polls, err := h.Polls.CommunityPolls(ctx, r.PathValue("communityId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch polls")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, pollViews(polls))
}
