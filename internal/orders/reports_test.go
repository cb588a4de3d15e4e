package orders

import (
	"context"
	"testing"
	"time"

	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/shopspring/decimal"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
}

func newReportService(t *testing.T, rows []models.Order) *service {
	t.Helper()
	svc := &service{
		repo: &stubOrdersRepo{all: rows},
		now:  fixedClock,
	}
	return svc
}

func TestDailyTotalsShape(t *testing.T) {
	t.Parallel()

	svc := newReportService(t, nil)
	points, err := svc.DailyTotals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 31 {
		t.Fatalf("expected 31 entries, got %d", len(points))
	}
	if points[0].Name != "2026-02-13" {
		t.Fatalf("expected window start 2026-02-13, got %s", points[0].Name)
	}
	if points[30].Name != "2026-03-15" {
		t.Fatalf("expected today last, got %s", points[30].Name)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Name <= points[i-1].Name {
			t.Fatalf("labels not ascending at %d: %s then %s", i, points[i-1].Name, points[i].Name)
		}
	}
	for _, point := range points {
		if !point.Value.IsZero() {
			t.Fatalf("expected zero bucket for %s, got %s", point.Name, point.Value)
		}
	}
}

func TestDailyTotalsBucketsByTimestampText(t *testing.T) {
	t.Parallel()

	day := func(d int, total string) models.Order {
		return models.Order{
			Total:    decimal.RequireFromString(total),
			PlacedAt: time.Date(2026, 3, d, 8, 0, 0, 0, time.UTC),
		}
	}
	rows := []models.Order{
		day(14, "10.00"),
		day(14, "2.50"),
		day(15, "5.00"),
		// outside the window, must not appear anywhere
		{Total: decimal.RequireFromString("99.00"), PlacedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	svc := newReportService(t, rows)
	points, err := svc.DailyTotals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byLabel := make(map[string]decimal.Decimal, len(points))
	total := decimal.Zero
	for _, point := range points {
		byLabel[point.Name] = point.Value
		total = total.Add(point.Value)
	}
	if !byLabel["2026-03-14"].Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unexpected bucket for 2026-03-14: %s", byLabel["2026-03-14"])
	}
	if !byLabel["2026-03-15"].Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("unexpected bucket for today: %s", byLabel["2026-03-15"])
	}
	if !total.Equal(decimal.RequireFromString("17.50")) {
		t.Fatalf("out-of-window order leaked into series: %s", total)
	}
}

func TestBuyerTotalsSkipsNilBuyerAndKeepsFirstName(t *testing.T) {
	t.Parallel()

	seven := int64(7)
	eight := int64(8)
	rows := []models.Order{
		{BuyerID: &seven, BuyerName: "Alice", Total: decimal.RequireFromString("10.00")},
		{BuyerID: nil, BuyerName: "Ghost", Total: decimal.RequireFromString("500.00")},
		{BuyerID: &seven, BuyerName: "", Total: decimal.RequireFromString("2.00")},
		{BuyerID: &eight, BuyerName: "", Total: decimal.RequireFromString("3.00")},
	}

	svc := newReportService(t, rows)
	points, err := svc.BuyerTotals(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 buyers, got %d", len(points))
	}

	byName := make(map[string]decimal.Decimal, len(points))
	for _, point := range points {
		byName[point.Name] = point.Value
	}
	if !byName["Alice"].Equal(decimal.RequireFromString("12.00")) {
		t.Fatalf("first-seen name should aggregate both orders: %+v", byName)
	}
	if !byName["UserID:8"].Equal(decimal.RequireFromString("3.00")) {
		t.Fatalf("expected synthesized name for empty buyer name: %+v", byName)
	}
}
