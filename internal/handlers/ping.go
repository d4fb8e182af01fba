package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/farm-commons/internal/repository"
	"github.com/senyabanana/farm-commons/internal/utils"
)

// PingHandler обрабатывает GET запрос к /api/ping
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "ok"); err != nil {
		log.Println(err)
	}
}

// StatsHandler - структура для выдачи количества записей в коллекциях.
type StatsHandler struct {
	Repo    *repository.Repositories
	Logger  *log.Logger
	Timeout time.Duration
}

// NewStatsHandler создаёт новый экземпляр StatsHandler.
func NewStatsHandler(repo *repository.Repositories, logger *log.Logger, timeout time.Duration) *StatsHandler {
	return &StatsHandler{
		Repo:    repo,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetStats обрабатывает GET запрос к /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	counts, err := h.Repo.Counts(ctx)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to count records")
		return
	}

	utils.SendJSON(w, h.Logger, http.StatusOK, counts)
}
