// Package reporting defines the fixed battery of pizza sales reports.
//
// Reporter is the port; the memory and sqlite packages provide adapters
// that must agree row for row on any valid dataset. Money is carried as
// decimal.Decimal so shares and running totals are exact.
package reporting

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
)

// ErrNoData is returned by single-row reports when the dataset holds
// nothing to report on.
var ErrNoData = errors.New("reporting: no data")

// Reporter computes every report over an implicit, read-only dataset.
type Reporter interface {
	TotalOrders(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	HighestPricedPizzas(ctx context.Context) ([]PricedPizza, error)
	MostCommonSize(ctx context.Context) (SizeCount, error)
	TopPizzaTypesByQuantity(ctx context.Context, n int) ([]NamedQuantity, error)
	QuantityByCategory(ctx context.Context) ([]CategoryQuantity, error)
	OrdersByDayHour(ctx context.Context) ([]DayHourCount, error)
	OrdersByHour(ctx context.Context) ([]HourCount, error)
	PizzaTypesPerCategory(ctx context.Context) ([]CategoryCount, error)
	AveragePizzasPerDay(ctx context.Context) (int, error)
	TopPizzaTypesByRevenue(ctx context.Context, n int) ([]NamedRevenue, error)
	RevenueShareByPizzaType(ctx context.Context) ([]RevenueShare, error)
	CumulativeRevenueByMonth(ctx context.Context) ([]MonthRevenue, error)
	TopPizzaTypesPerCategory(ctx context.Context, n int) ([]RankedPizzaType, error)
}

type PricedPizza struct {
	PizzaID string          `json:"pizza_id"`
	Name    string          `json:"name"`
	Size    string          `json:"size"`
	Price   decimal.Decimal `json:"price"`
}

type SizeCount struct {
	Size  string `json:"size"`
	Count int    `json:"count"`
}

type NamedQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CategoryQuantity struct {
	Category domain.Category `json:"category"`
	Quantity int             `json:"quantity"`
}

type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

// DayHourCount buckets orders by day-of-month and hour-of-day. Orders on
// the same day-of-month in different months share a bucket.
type DayHourCount struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

type HourCount struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

type NamedRevenue struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueShare is a pizza type's share of grand total revenue. Share is
// the exact ratio in [0, 1]; Percent is Share*100 rounded to one decimal
// place with a trailing "%".
type RevenueShare struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Share   decimal.Decimal `json:"share"`
	Percent string          `json:"percent"`
}

type MonthRevenue struct {
	Month      time.Month      `json:"month"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

type RankedPizzaType struct {
	Category domain.Category `json:"category"`
	Name     string          `json:"name"`
	Revenue  decimal.Decimal `json:"revenue"`
	Rank     int             `json:"rank"`
}
