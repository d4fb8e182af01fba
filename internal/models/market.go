package models

// MarketPrice представляет запись о рыночной цене продукта.
type MarketPrice struct {
	ID         string    `json:"id"`
	VendorID   string    `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Product    string    `json:"product"`
	Price      float64   `json:"price"`
	Unit       string    `json:"unit"`
	Location   string    `json:"location"`
	Notes      string    `json:"notes"`
	Timestamp  Timestamp `json:"timestamp"`
}

// MarketPriceRequest представляет структуру запроса для добавления цены.
type MarketPriceRequest struct {
	VendorID   string  `json:"vendorId"`
	VendorName string  `json:"vendorName"`
	Product    string  `json:"product"`
	Price      float64 `json:"price"`
	Unit       string  `json:"unit"`
	Location   string  `json:"location"`
	Notes      string  `json:"notes"`
}

// FarmingTip представляет совет или материал для фермеров.
type FarmingTip struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserType  Role      `json:"user_type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"liked_by"`
	Timestamp Timestamp `json:"timestamp"`
}

// FarmingTipRequest представляет структуру запроса для добавления совета.
type FarmingTipRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	UserType Role   `json:"userType"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}
