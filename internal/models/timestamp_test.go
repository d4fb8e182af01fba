package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339 utc", `"2025-03-01T10:15:30Z"`, time.Date(2025, time.March, 1, 10, 15, 30, 0, time.UTC), false},
		{"rfc3339 offset", `"2025-03-01T15:45:30+05:30"`, time.Date(2025, time.March, 1, 10, 15, 30, 0, time.UTC), false},
		{"naive with micros", `"2025-03-01T10:15:30.123456"`, time.Date(2025, time.March, 1, 10, 15, 30, 123456000, time.UTC), false},
		{"naive without fraction", `"2025-03-01T10:15:30"`, time.Date(2025, time.March, 1, 10, 15, 30, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
		{"number", `12345`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !ts.Equal(tt.want) {
				t.Fatalf("Unmarshal(%s) = %v, want %v", tt.in, ts.Time, tt.want)
			}
		})
	}
}

func TestTimestampMarshalsRFC3339(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, time.March, 1, 10, 15, 30, 123456000, time.UTC))
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), `"2025-03-01T10:15:30.123456Z"`; got != want {
		t.Fatalf("Marshal = %s, want %s", got, want)
	}
}

func TestUserLoadsNaiveCreatedAt(t *testing.T) {
	var u User
	raw := `{"id":"f1","name":"Ravi","latitude":12.9,"longitude":77.5,"created_at":"2025-03-01T10:15:30.123456"}`
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if u.CreatedAt.Year() != 2025 || u.CreatedAt.Nanosecond() != 123456000 {
		t.Fatalf("CreatedAt = %v", u.CreatedAt.Time)
	}
}
