package handlers

// IDResponse возвращается после создания записи.
type IDResponse struct {
	ID string `json:"id"`
}

// StatusResponse возвращается после операций без тела ответа.
type StatusResponse struct {
	Status string `json:"status"`
}
