package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// naiveLayout - ISO-8601 без часового пояса, как в ранее сохранённых данных.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp - момент времени в JSON-записях.
// Читает RFC 3339 и ISO-8601 без смещения (трактуется как UTC), пишет RFC 3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp оборачивает t в Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON кодирует время в RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return t.Time.MarshalJSON()
}

// UnmarshalJSON разбирает RFC 3339 или ISO-8601 без смещения.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp must be a JSON string: %s", data)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
