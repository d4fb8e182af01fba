package models

// Member представляет участника сообщества.
type Member struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     Role     `json:"type"`
	Distance *float64 `json:"distance,omitempty"` // Расстояние до закупщика в км, только для фермеров
}

// Message представляет сообщение в чате сообщества.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserType  Role      `json:"user_type"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
}

// MessageRequest представляет структуру запроса для отправки сообщения.
type MessageRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	UserType Role   `json:"userType"`
	Content  string `json:"content"`
}

// Community представляет модель сообщества вокруг закупщика.
type Community struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	VendorID   string    `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Members    []Member  `json:"members"`
	Messages   []Message `json:"messages"`
	CreatedAt  Timestamp `json:"created_at"`
}

// HasMember проверяет, состоит ли пользователь в сообществе.
func (c *Community) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// CommunitySummary - краткое описание сообщества для списка сообществ пользователя.
type CommunitySummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	VendorName   string `json:"vendor_name"`
	MemberCount  int    `json:"member_count"`
	MessageCount int    `json:"message_count"`
}
