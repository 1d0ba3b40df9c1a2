package reporting

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pizza-sales/internal/pkg/cache"
)

var _ Reporter = (*CachedReporter)(nil)

// CachedReporter is a read-through cache in front of another Reporter.
// Keys combine the report name, its argument and the dataset Fingerprint,
// so reloading different data never serves stale rows. Cache errors are logged
// and the call falls through to the wrapped reporter.
type CachedReporter struct {
	next        Reporter
	cache       cache.Cache
	fingerprint string
	ttl         time.Duration
}

// NewCachedReporter wraps next. fingerprint must come from Fingerprint over
// the data next reports on.
func NewCachedReporter(next Reporter, c cache.Cache, fingerprint string, ttl time.Duration) *CachedReporter {
	return &CachedReporter{next: next, cache: c, fingerprint: fingerprint, ttl: ttl}
}

func cached[T any](ctx context.Context, r *CachedReporter, report string, arg int, compute func() (T, error)) (T, error) {
	key := r.cache.GenerateKey(r.fingerprint, report, strconv.Itoa(arg))

	if raw, err := r.cache.Get(ctx, key); err != nil {
		slog.WarnContext(ctx, "report cache read failed", "key", key, "error", err)
	} else if raw != "" {
		var hit T
		if err := json.Unmarshal([]byte(raw), &hit); err == nil {
			return hit, nil
		}
		slog.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	}

	val, err := compute()
	if err != nil {
		return val, err
	}

	if b, err := json.Marshal(val); err == nil {
		if err := r.cache.Set(ctx, key, string(b), r.ttl); err != nil {
			slog.WarnContext(ctx, "report cache write failed", "key", key, "error", err)
		}
	}
	return val, nil
}

func (r *CachedReporter) TotalOrders(ctx context.Context) (int, error) {
	return cached(ctx, r, "total_orders", 0, func() (int, error) { return r.next.TotalOrders(ctx) })
}

func (r *CachedReporter) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return cached(ctx, r, "total_revenue", 0, func() (decimal.Decimal, error) { return r.next.TotalRevenue(ctx) })
}

func (r *CachedReporter) HighestPricedPizzas(ctx context.Context) ([]PricedPizza, error) {
	return cached(ctx, r, "highest_priced", 0, func() ([]PricedPizza, error) { return r.next.HighestPricedPizzas(ctx) })
}

// MostCommonSize is not cached when the wrapped reporter returns ErrNoData.
func (r *CachedReporter) MostCommonSize(ctx context.Context) (SizeCount, error) {
	return cached(ctx, r, "most_common_size", 0, func() (SizeCount, error) { return r.next.MostCommonSize(ctx) })
}

func (r *CachedReporter) TopPizzaTypesByQuantity(ctx context.Context, n int) ([]NamedQuantity, error) {
	return cached(ctx, r, "top_quantity", n, func() ([]NamedQuantity, error) { return r.next.TopPizzaTypesByQuantity(ctx, n) })
}

func (r *CachedReporter) QuantityByCategory(ctx context.Context) ([]CategoryQuantity, error) {
	return cached(ctx, r, "quantity_by_category", 0, func() ([]CategoryQuantity, error) { return r.next.QuantityByCategory(ctx) })
}

func (r *CachedReporter) OrdersByDayHour(ctx context.Context) ([]DayHourCount, error) {
	return cached(ctx, r, "orders_by_day_hour", 0, func() ([]DayHourCount, error) { return r.next.OrdersByDayHour(ctx) })
}

func (r *CachedReporter) OrdersByHour(ctx context.Context) ([]HourCount, error) {
	return cached(ctx, r, "orders_by_hour", 0, func() ([]HourCount, error) { return r.next.OrdersByHour(ctx) })
}

func (r *CachedReporter) PizzaTypesPerCategory(ctx context.Context) ([]CategoryCount, error) {
	return cached(ctx, r, "pizza_types_per_category", 0, func() ([]CategoryCount, error) { return r.next.PizzaTypesPerCategory(ctx) })
}

func (r *CachedReporter) AveragePizzasPerDay(ctx context.Context) (int, error) {
	return cached(ctx, r, "average_per_day", 0, func() (int, error) { return r.next.AveragePizzasPerDay(ctx) })
}

func (r *CachedReporter) TopPizzaTypesByRevenue(ctx context.Context, n int) ([]NamedRevenue, error) {
	return cached(ctx, r, "top_revenue", n, func() ([]NamedRevenue, error) { return r.next.TopPizzaTypesByRevenue(ctx, n) })
}

func (r *CachedReporter) RevenueShareByPizzaType(ctx context.Context) ([]RevenueShare, error) {
	return cached(ctx, r, "revenue_share", 0, func() ([]RevenueShare, error) { return r.next.RevenueShareByPizzaType(ctx) })
}

func (r *CachedReporter) CumulativeRevenueByMonth(ctx context.Context) ([]MonthRevenue, error) {
	return cached(ctx, r, "cumulative_by_month", 0, func() ([]MonthRevenue, error) { return r.next.CumulativeRevenueByMonth(ctx) })
}

func (r *CachedReporter) TopPizzaTypesPerCategory(ctx context.Context, n int) ([]RankedPizzaType, error) {
	return cached(ctx, r, "top_per_category", n, func() ([]RankedPizzaType, error) { return r.next.TopPizzaTypesPerCategory(ctx, n) })
}
