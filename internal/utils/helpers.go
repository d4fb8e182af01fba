package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/senyabanana/farm-commons/internal/models"
)

// MaxLimit - верхняя граница параметра limit.
const MaxLimit = 100

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendJSON отправляет ответ в формате JSON с указанным кодом
func SendJSON(w http.ResponseWriter, logger *log.Logger, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Println(err)
	}
}

// SendServiceError логирует ошибку сервиса и отправляет её клиенту.
// Ошибки, не являющиеся *models.ErrorResponse, отдаются как 500 с сообщением fallback.
func SendServiceError(w http.ResponseWriter, logger *log.Logger, err error, fallback string) {
	logger.Println(err)
	var errorResponse *models.ErrorResponse
	if errors.As(err, &errorResponse) {
		SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// DecodeJSON разбирает тело запроса в dst
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}

// ParseLimit обрабатывает limit, возвращая fallback при пустом значении
func ParseLimit(limitStr string, fallback int) (int, error) {
	if limitStr == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxLimit {
		return 0, fmt.Errorf("invalid limit parameter, must be a positive integer [1:%d]", MaxLimit)
	}
	return limit, nil
}

// ParseBool обрабатывает необязательный логический параметр
func ParseBool(value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean parameter %q", value)
	}
	return b, nil
}
