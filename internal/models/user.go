package models

// Role - роль участника сообщества.
type Role string

const (
	Farmer Role = "farmer" // Фермер, производитель
	Vendor Role = "vendor" // Закупщик, владелец сообщества
)

// Valid проверяет, что роль известна.
func (r Role) Valid() bool {
	return r == Farmer || r == Vendor
}

// User представляет модель зарегистрированного фермера или закупщика.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt Timestamp `json:"created_at"`
}

// UserRequest представляет структуру запроса для регистрации пользователя.
type UserRequest struct {
	Role      Role    `json:"role"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
