package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/senyabanana/farm-commons/internal/models"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.New().String()
}

func now() models.Timestamp {
	return models.NewTimestamp(time.Now().UTC())
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// requireText принимает пары "имя поля, значение" и возвращает ошибку валидации для первого пустого значения.
func requireText(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return models.NewValidationError("missing required field: " + pairs[i])
		}
	}
	return nil
}

// formatQuantity печатает количество без лишних нулей: 100, 12.5.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
