package models

// PollStatus - статус опроса.
type PollStatus string

const (
	OpenPoll      PollStatus = "open"      // Опрос открыт, идёт сбор объёма
	FulfilledPoll PollStatus = "fulfilled" // Требуемый объём собран
	ClosedPoll    PollStatus = "closed"    // Опрос закрыт закупщиком
)

// Response представляет обязательство фермера по опросу.
type Response struct {
	FarmerID      string     `json:"farmer_id"`
	FarmerName    string     `json:"farmer_name"`
	Quantity      float64    `json:"quantity"`
	ReferenceCode string     `json:"reference_code"`
	CreatedAt     Timestamp  `json:"created_at"`
	UpdatedAt     *Timestamp `json:"updated_at,omitempty"`
}

// Poll представляет модель опроса (запроса закупщика на объём продукта).
type Poll struct {
	ID          string     `json:"id"`
	CommunityID string     `json:"community_id"`
	VendorID    string     `json:"vendor_id"`
	VendorName  string     `json:"vendor_name"`
	Product     string     `json:"product"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	Deadline    string     `json:"deadline"`
	Status      PollStatus `json:"status"`
	CreatedAt   Timestamp  `json:"created_at"`
	Responses   []Response `json:"responses"`
}

// PollRequest представляет структуру запроса для создания опроса.
type PollRequest struct {
	CommunityID string  `json:"communityId"`
	VendorID    string  `json:"vendorId"`
	VendorName  string  `json:"vendorName"`
	Product     string  `json:"product"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Deadline    string  `json:"deadline"`
}

// ResponseRequest представляет структуру запроса для ответа фермера на опрос.
type ResponseRequest struct {
	FarmerID   string  `json:"farmerId"`
	FarmerName string  `json:"farmerName"`
	Quantity   float64 `json:"quantity"`
}

// Committed возвращает суммарный объём всех обязательств.
func (p *Poll) Committed() float64 {
	var total float64
	for _, r := range p.Responses {
		total += r.Quantity
	}
	return total
}

// Progress возвращает процент выполнения, не больше 100.
func (p *Poll) Progress() float64 {
	if p.Quantity <= 0 {
		return 0
	}
	percent := p.Committed() / p.Quantity * 100
	if percent > 100 {
		return 100
	}
	return percent
}

// ResponseBy возвращает обязательство фермера или nil.
func (p *Poll) ResponseBy(farmerID string) *Response {
	for i := range p.Responses {
		if p.Responses[i].FarmerID == farmerID {
			return &p.Responses[i]
		}
	}
	return nil
}

// PollView - опрос вместе с производными значениями для отображения.
type PollView struct {
	Poll
	Committed float64 `json:"committed"`
	Progress  float64 `json:"progress"`
}

// NewPollView собирает PollView из опроса.
func NewPollView(p Poll) PollView {
	return PollView{Poll: p, Committed: p.Committed(), Progress: p.Progress()}
}
