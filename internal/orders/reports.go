package orders

import (
	"context"
	"strconv"
	"strings"

	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	dayLabelLayout  = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
	dailyWindowDays = 30
)

// DailyTotals builds the line chart series: the thirty days before today in
// ascending order with today appended, 31 entries in total. A day's bucket
// is the sum of every order whose formatted timestamp contains that day's
// label; days without orders stay at zero.
func (s *service) DailyTotals(ctx context.Context) ([]ChartPoint, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
	}

	now := s.now()
	labels := make([]string, 0, dailyWindowDays+1)
	for offset := dailyWindowDays; offset >= 1; offset-- {
		labels = append(labels, now.AddDate(0, 0, -offset).Format(dayLabelLayout))
	}
	labels = append(labels, now.Format(dayLabelLayout))

	stamps := make([]string, len(rows))
	for i, row := range rows {
		stamps[i] = row.PlacedAt.Format(timestampLayout)
	}

	points := make([]ChartPoint, 0, len(labels))
	for _, label := range labels {
		sum := decimal.Zero
		for i, row := range rows {
			if strings.Contains(stamps[i], label) {
				sum = sum.Add(row.Total)
			}
		}
		points = append(points, ChartPoint{Name: label, Value: sum})
	}
	return points, nil
}

// BuyerTotals builds the bar chart series: one entry per distinct buyer,
// summing that buyer's order totals. Orders without a buyer are skipped.
// The first order seen for a buyer fixes the display name for the whole
// report; an empty stored name falls back to "UserID:<id>".
func (s *service) BuyerTotals(ctx context.Context) ([]ChartPoint, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
	}

	names := make(map[int64]string)
	totals := make(map[int64]decimal.Decimal)
	order := make([]int64, 0)

	for _, row := range rows {
		if row.BuyerID == nil {
			continue
		}
		id := *row.BuyerID
		if _, seen := names[id]; !seen {
			name := row.BuyerName
			if name == "" {
				name = "UserID:" + strconv.FormatInt(id, 10)
			}
			names[id] = name
			totals[id] = decimal.Zero
			order = append(order, id)
		}
		totals[id] = totals[id].Add(row.Total)
	}

	points := make([]ChartPoint, 0, len(order))
	for _, id := range order {
		points = append(points, ChartPoint{Name: names[id], Value: totals[id]})
	}
	return points, nil
}
