package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/senyabanana/farm-commons/internal/models"
)

func seedPrices(t *testing.T, e *testEnv) {
	t.Helper()
	base := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC)
	at := models.NewTimestamp
	prices := []models.MarketPrice{
		{ID: "p1", VendorID: "v1", Product: "Tomatoes", Price: 20, Unit: "kg", Timestamp: at(base)},
		{ID: "p2", VendorID: "v2", Product: "tomatoes", Price: 22, Unit: "kg", Timestamp: at(base.Add(2 * time.Hour))},
		{ID: "p3", VendorID: "v1", Product: "Onions", Price: 30, Unit: "kg", Timestamp: at(base.Add(time.Hour))},
	}
	if err := e.repo.MarketPrices.Save(context.Background(), prices); err != nil {
		t.Fatalf("seed prices: %v", err)
	}
}

func ids[T any](records []T, id func(T) string) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, id(r))
	}
	return out
}

func priceID(p models.MarketPrice) string { return p.ID }

func TestMarketQueries(t *testing.T) {
	e := newTestEnv(t)
	seedPrices(t, e)
	ctx := context.Background()

	latest, err := e.market.Latest(ctx, 0)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got := fmt.Sprint(ids(latest, priceID)); got != "[p2 p3 p1]" {
		t.Errorf("latest = %s, want [p2 p3 p1]", got)
	}

	limited, err := e.market.Latest(ctx, 2)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got := fmt.Sprint(ids(limited, priceID)); got != "[p2 p3]" {
		t.Errorf("latest(2) = %s, want [p2 p3]", got)
	}

	tomatoes, err := e.market.ByProduct(ctx, "TOMATOES")
	if err != nil {
		t.Fatalf("by product: %v", err)
	}
	if got := fmt.Sprint(ids(tomatoes, priceID)); got != "[p2 p1]" {
		t.Errorf("by product = %s, want [p2 p1]", got)
	}

	vendor, err := e.market.ByVendor(ctx, "v1")
	if err != nil {
		t.Fatalf("by vendor: %v", err)
	}
	if got := fmt.Sprint(ids(vendor, priceID)); got != "[p3 p1]" {
		t.Errorf("by vendor = %s, want [p3 p1]", got)
	}
}

func TestMarketAdd(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	id, err := e.market.Add(ctx, models.MarketPriceRequest{
		VendorID: "v1", VendorName: "Asha", Product: " Wheat ", Price: 25.5, Unit: "kg", Location: "Mandi",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	prices, err := e.market.ByVendor(ctx, "v1")
	if err != nil {
		t.Fatalf("by vendor: %v", err)
	}
	if len(prices) != 1 || prices[0].ID != id || prices[0].Product != "Wheat" || prices[0].Timestamp.IsZero() {
		t.Fatalf("prices = %#v", prices)
	}

	_, err = e.market.Add(ctx, models.MarketPriceRequest{VendorID: "v1", Product: "Wheat", Unit: "kg", Price: -1})
	assertValidationError(t, err)
	_, err = e.market.Add(ctx, models.MarketPriceRequest{VendorID: "v1", Unit: "kg", Price: 1})
	assertValidationError(t, err)
}
