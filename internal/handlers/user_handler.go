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

// UserHandler - структура для обработки запросов о фермерах и закупщиках.
type UserHandler struct {
	Service     *services.UserService
	Communities *services.CommunityService
	Logger      *log.Logger
	Timeout     time.Duration
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(service *services.UserService, communities *services.CommunityService, logger *log.Logger, timeout time.Duration) *UserHandler {
	return &UserHandler{
		Service:     service,
		Communities: communities,
		Logger:      logger,
		Timeout:     timeout,
	}
}

// Register обрабатывает запросы на регистрацию пользователя.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var userReq models.UserRequest
	if err := utils.DecodeJSON(r, &userReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.Service.Register(ctx, userReq)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to register user")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusCreated, IDResponse{ID: id})
}

// GetUser обрабатывает запросы для получения пользователя по роли и идентификатору.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	role := models.Role(r.PathValue("role"))
	userId := r.PathValue("userId")

	user, ok, err := h.Service.Get(ctx, role, userId)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch user")
		return
	}
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "user not found")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, user)
}

// GetUserCommunities обрабатывает запросы для получения сообществ пользователя.
func (h *UserHandler) GetUserCommunities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	role := models.Role(r.PathValue("role"))
	if !role.Valid() {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid role, must be farmer or vendor")
		return
	}

	communities, err := h.Communities.UserCommunities(ctx, r.PathValue("userId"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to fetch communities")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, communities)
}
