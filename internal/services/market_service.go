package services

import (
	"context"
	"sort"
	"strings"

	"github.com/senyabanana/farm-commons/internal/models"
	"github.com/senyabanana/farm-commons/internal/repository"
)

// DefaultPriceLimit - количество последних цен по умолчанию.
const DefaultPriceLimit = 20

type MarketService struct {
	Repo *repository.Repositories
}

// NewMarketService создаёт новый экземпляр MarketService.
func NewMarketService(repo *repository.Repositories) *MarketService {
	return &MarketService{Repo: repo}
}

// Add добавляет запись о цене и возвращает её идентификатор.
func (s *MarketService) Add(ctx context.Context, req models.MarketPriceRequest) (string, error) {
	if err := requireText("vendorId", req.VendorID, "product", req.Product, "unit", req.Unit); err != nil {
		return "", err
	}
	if !isFinite(req.Price) || req.Price < 0 {
		return "", models.NewValidationError("price must be a non-negative number")
	}

	price := models.MarketPrice{
		ID:         newID(),
		VendorID:   req.VendorID,
		VendorName: req.VendorName,
		Product:    strings.TrimSpace(req.Product),
		Price:      req.Price,
		Unit:       strings.TrimSpace(req.Unit),
		Location:   req.Location,
		Notes:      req.Notes,
		Timestamp:  now(),
	}
	err := s.Repo.MarketPrices.Update(ctx, func(prices []models.MarketPrice) ([]models.MarketPrice, error) {
		return append(prices, price), nil
	})
	if err != nil {
		return "", err
	}
	return price.ID, nil
}

func newestFirst(prices []models.MarketPrice) []models.MarketPrice {
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Timestamp.After(prices[j].Timestamp.Time)
	})
	return prices
}

func (s *MarketService) filter(ctx context.Context, keep func(models.MarketPrice) bool) ([]models.MarketPrice, error) {
	prices, err := s.Repo.MarketPrices.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := []models.MarketPrice{}
	for _, p := range prices {
		if keep(p) {
			result = append(result, p)
		}
	}
	return newestFirst(result), nil
}

// Latest возвращает последние limit цен, новые первыми.
func (s *MarketService) Latest(ctx context.Context, limit int) ([]models.MarketPrice, error) {
	if limit <= 0 {
		limit = DefaultPriceLimit
	}
	prices, err := s.filter(ctx, func(models.MarketPrice) bool { return true })
	if err != nil {
		return nil, err
	}
	if len(prices) > limit {
		prices = prices[:limit]
	}
	return prices, nil
}

// ByProduct возвращает цены на продукт без учёта регистра.
func (s *MarketService) ByProduct(ctx context.Context, product string) ([]models.MarketPrice, error) {
	product = strings.TrimSpace(product)
	return s.filter(ctx, func(p models.MarketPrice) bool {
		return strings.EqualFold(p.Product, product)
	})
}

// ByVendor возвращает цены, опубликованные закупщиком.
func (s *MarketService) ByVendor(ctx context.Context, vendorID string) ([]models.MarketPrice, error) {
	return s.filter(ctx, func(p models.MarketPrice) bool {
		return p.VendorID == vendorID
	})
}
