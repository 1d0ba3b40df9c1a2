// Package battery runs the fixed sequence of pizza sales reports and
// shapes each result into a labeled table.
package battery

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pizza-sales/internal/reporting"
)

// Row limits of the ranking reports.
const (
	TopByQuantity  = 5
	TopByRevenue   = 3
	TopPerCategory = 3

	moneyPlaces = 2
)

type reportStep struct {
	name string
	run  func(ctx context.Context) (Section, error)
}

func (s *reportStep) Name() string { return s.name }

func (s *reportStep) Execute(ctx context.Context) (Section, error) {
	return s.run(ctx)
}

// newStep adapts a typed report call into a Step. toRows renders each
// value as the text cells under columns.
func newStep[T any](
	name, title string,
	columns []string,
	report func(ctx context.Context) (T, error),
	toRows func(T) [][]string,
) Step {
	return &reportStep{
		name: name,
		run: func(ctx context.Context) (Section, error) {
			v, err := report(ctx)
			if err != nil {
				return Section{}, err
			}
			return Section{Name: name, Title: title, Columns: columns, Rows: toRows(v), Data: v}, nil
		},
	}
}

// Standard returns the full report battery over r, in display order.
func Standard(r reporting.Reporter) []Step {
	return []Step{
		newStep("total_orders", "Total orders", []string{"orders"},
			r.TotalOrders,
			func(n int) [][]string { return [][]string{{strconv.Itoa(n)}} }),

		newStep("total_revenue", "Total revenue", []string{"revenue"},
			r.TotalRevenue,
			func(d decimal.Decimal) [][]string { return [][]string{{d.StringFixed(moneyPlaces)}} }),

		newStep("highest_priced_pizza", "Highest-priced pizza", []string{"pizza", "name", "size", "price"},
			r.HighestPricedPizzas,
			func(rows []reporting.PricedPizza) [][]string {
				return mapRows(rows, func(p reporting.PricedPizza) []string {
					return []string{p.PizzaID, p.Name, p.Size, p.Price.StringFixed(moneyPlaces)}
				})
			}),

		newStep("most_common_size", "Most common pizza size", []string{"size", "line_items"},
			mostCommonSize(r),
			func(sc *reporting.SizeCount) [][]string {
				if sc == nil {
					return nil
				}
				return [][]string{{sc.Size, strconv.Itoa(sc.Count)}}
			}),

		newStep("top_pizza_types_by_quantity", "Top pizza types by quantity", []string{"name", "quantity"},
			func(ctx context.Context) ([]reporting.NamedQuantity, error) {
				return r.TopPizzaTypesByQuantity(ctx, TopByQuantity)
			},
			func(rows []reporting.NamedQuantity) [][]string {
				return mapRows(rows, func(q reporting.NamedQuantity) []string {
					return []string{q.Name, strconv.Itoa(q.Quantity)}
				})
			}),

		newStep("quantity_by_category", "Quantity by category", []string{"category", "quantity"},
			r.QuantityByCategory,
			func(rows []reporting.CategoryQuantity) [][]string {
				return mapRows(rows, func(q reporting.CategoryQuantity) []string {
					return []string{string(q.Category), strconv.Itoa(q.Quantity)}
				})
			}),

		newStep("orders_by_day_hour", "Orders by day of month and hour", []string{"day", "hour", "orders"},
			r.OrdersByDayHour,
			func(rows []reporting.DayHourCount) [][]string {
				return mapRows(rows, func(c reporting.DayHourCount) []string {
					return []string{strconv.Itoa(c.Day), strconv.Itoa(c.Hour), strconv.Itoa(c.Orders)}
				})
			}),

		newStep("orders_by_hour", "Orders by hour", []string{"hour", "orders"},
			r.OrdersByHour,
			func(rows []reporting.HourCount) [][]string {
				return mapRows(rows, func(c reporting.HourCount) []string {
					return []string{strconv.Itoa(c.Hour), strconv.Itoa(c.Orders)}
				})
			}),

		newStep("pizza_types_per_category", "Pizza types per category", []string{"category", "pizza_types"},
			r.PizzaTypesPerCategory,
			func(rows []reporting.CategoryCount) [][]string {
				return mapRows(rows, func(c reporting.CategoryCount) []string {
					return []string{string(c.Category), strconv.Itoa(c.Count)}
				})
			}),

		newStep("average_pizzas_per_day", "Average pizzas ordered per day", []string{"pizzas"},
			r.AveragePizzasPerDay,
			func(n int) [][]string { return [][]string{{strconv.Itoa(n)}} }),

		newStep("top_pizza_types_by_revenue", "Top pizza types by revenue", []string{"name", "revenue"},
			func(ctx context.Context) ([]reporting.NamedRevenue, error) {
				return r.TopPizzaTypesByRevenue(ctx, TopByRevenue)
			},
			func(rows []reporting.NamedRevenue) [][]string {
				return mapRows(rows, func(n reporting.NamedRevenue) []string {
					return []string{n.Name, n.Revenue.StringFixed(moneyPlaces)}
				})
			}),

		newStep("revenue_share_by_pizza_type", "Revenue share by pizza type", []string{"name", "revenue", "share"},
			r.RevenueShareByPizzaType,
			func(rows []reporting.RevenueShare) [][]string {
				return mapRows(rows, func(s reporting.RevenueShare) []string {
					return []string{s.Name, s.Revenue.StringFixed(moneyPlaces), s.Percent}
				})
			}),

		newStep("cumulative_revenue_by_month", "Cumulative revenue by month", []string{"month", "revenue", "cumulative"},
			r.CumulativeRevenueByMonth,
			func(rows []reporting.MonthRevenue) [][]string {
				return mapRows(rows, func(m reporting.MonthRevenue) []string {
					return []string{m.Month.String(), m.Revenue.StringFixed(moneyPlaces), m.Cumulative.StringFixed(moneyPlaces)}
				})
			}),

		newStep("top_pizza_types_per_category", "Top pizza types by revenue per category",
			[]string{"category", "rank", "name", "revenue"},
			func(ctx context.Context) ([]reporting.RankedPizzaType, error) {
				return r.TopPizzaTypesPerCategory(ctx, TopPerCategory)
			},
			func(rows []reporting.RankedPizzaType) [][]string {
				return mapRows(rows, func(p reporting.RankedPizzaType) []string {
					return []string{string(p.Category), strconv.Itoa(p.Rank), p.Name, p.Revenue.StringFixed(moneyPlaces)}
				})
			}),
	}
}

// mostCommonSize turns ErrNoData into an empty section instead of failing
// the whole run.
func mostCommonSize(r reporting.Reporter) func(ctx context.Context) (*reporting.SizeCount, error) {
	return func(ctx context.Context) (*reporting.SizeCount, error) {
		sc, err := r.MostCommonSize(ctx)
		if errors.Is(err, reporting.ErrNoData) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &sc, nil
	}
}

func mapRows[T any](rows []T, f func(T) []string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = f(row)
	}
	return out
}
