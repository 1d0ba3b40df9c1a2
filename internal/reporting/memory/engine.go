// Package memory implements reporting.Reporter over an in-memory dataset.
package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pizza-sales/internal/reporting"
	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
)

var _ reporting.Reporter = (*Engine)(nil)

// Engine indexes a dataset once and answers every report from it.
// The dataset must not be mutated after NewEngine returns.
type Engine struct {
	ds     *domain.Dataset
	pizzas map[string]domain.Pizza
	types  map[string]domain.PizzaType
}

func NewEngine(ds *domain.Dataset) *Engine {
	e := &Engine{
		ds:     ds,
		pizzas: make(map[string]domain.Pizza, len(ds.Pizzas)),
		types:  make(map[string]domain.PizzaType, len(ds.PizzaTypes)),
	}
	for _, p := range ds.Pizzas {
		e.pizzas[p.ID] = p
	}
	for _, pt := range ds.PizzaTypes {
		e.types[pt.ID] = pt
	}
	return e
}

// sale is a line item joined with its pizza and pizza type.
type sale struct {
	item  domain.OrderLineItem
	pizza domain.Pizza
	kind  domain.PizzaType
}

func (s sale) revenue() decimal.Decimal {
	return s.pizza.Price.Mul(decimal.NewFromInt(int64(s.item.Quantity)))
}

func (e *Engine) sales() []sale {
	out := make([]sale, 0, len(e.ds.LineItems))
	for _, li := range e.ds.LineItems {
		p := e.pizzas[li.PizzaID]
		out = append(out, sale{item: li, pizza: p, kind: e.types[p.PizzaTypeID]})
	}
	return out
}

func (e *Engine) TotalOrders(_ context.Context) (int, error) {
	seen := make(map[int]struct{}, len(e.ds.Orders))
	for _, o := range e.ds.Orders {
		seen[o.ID] = struct{}{}
	}
	return len(seen), nil
}

func (e *Engine) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range e.sales() {
		total = total.Add(s.revenue())
	}
	return total, nil
}

func (e *Engine) HighestPricedPizzas(_ context.Context) ([]reporting.PricedPizza, error) {
	var out []reporting.PricedPizza
	for _, p := range e.ds.Pizzas {
		if len(out) > 0 {
			c := p.Price.Cmp(out[0].Price)
			if c < 0 {
				continue
			}
			if c > 0 {
				out = out[:0]
			}
		}
		out = append(out, reporting.PricedPizza{
			PizzaID: p.ID,
			Name:    e.types[p.PizzaTypeID].Name,
			Size:    p.Size,
			Price:   p.Price,
		})
	}
	slices.SortFunc(out, func(a, b reporting.PricedPizza) int { return cmp.Compare(a.PizzaID, b.PizzaID) })
	return out, nil
}

func (e *Engine) MostCommonSize(_ context.Context) (reporting.SizeCount, error) {
	counts := make(map[string]int)
	for _, s := range e.sales() {
		counts[s.pizza.Size]++
	}
	if len(counts) == 0 {
		return reporting.SizeCount{}, reporting.ErrNoData
	}

	var best reporting.SizeCount
	for size, n := range counts {
		if n > best.Count || (n == best.Count && size < best.Size) {
			best = reporting.SizeCount{Size: size, Count: n}
		}
	}
	return best, nil
}

func (e *Engine) TopPizzaTypesByQuantity(_ context.Context, n int) ([]reporting.NamedQuantity, error) {
	byName := make(map[string]int)
	for _, s := range e.sales() {
		byName[s.kind.Name] += s.item.Quantity
	}

	rows := make([]reporting.NamedQuantity, 0, len(byName))
	for name, q := range byName {
		rows = append(rows, reporting.NamedQuantity{Name: name, Quantity: q})
	}
	return reporting.Top(rows, n, reporting.CompareNamedQuantity), nil
}

func (e *Engine) QuantityByCategory(_ context.Context) ([]reporting.CategoryQuantity, error) {
	byCategory := make(map[domain.Category]int)
	for _, s := range e.sales() {
		byCategory[s.kind.Category] += s.item.Quantity
	}

	rows := make([]reporting.CategoryQuantity, 0, len(byCategory))
	for c, q := range byCategory {
		rows = append(rows, reporting.CategoryQuantity{Category: c, Quantity: q})
	}
	slices.SortFunc(rows, func(a, b reporting.CategoryQuantity) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return rows, nil
}

func (e *Engine) OrdersByDayHour(_ context.Context) ([]reporting.DayHourCount, error) {
	type bucket struct{ day, hour int }
	counts := make(map[bucket]int)
	for _, o := range e.ds.Orders {
		at := o.PlacedAt()
		counts[bucket{at.Day(), at.Hour()}]++
	}

	rows := make([]reporting.DayHourCount, 0, len(counts))
	for b, n := range counts {
		rows = append(rows, reporting.DayHourCount{Day: b.day, Hour: b.hour, Orders: n})
	}
	slices.SortFunc(rows, func(a, b reporting.DayHourCount) int {
		if c := cmp.Compare(a.Day, b.Day); c != 0 {
			return c
		}
		return cmp.Compare(a.Hour, b.Hour)
	})
	return rows, nil
}

func (e *Engine) OrdersByHour(_ context.Context) ([]reporting.HourCount, error) {
	counts := make(map[int]int)
	for _, o := range e.ds.Orders {
		counts[o.PlacedAt().Hour()]++
	}

	rows := make([]reporting.HourCount, 0, len(counts))
	for h, n := range counts {
		rows = append(rows, reporting.HourCount{Hour: h, Orders: n})
	}
	slices.SortFunc(rows, func(a, b reporting.HourCount) int { return cmp.Compare(a.Hour, b.Hour) })
	return rows, nil
}

func (e *Engine) PizzaTypesPerCategory(_ context.Context) ([]reporting.CategoryCount, error) {
	counts := make(map[domain.Category]int)
	for _, pt := range e.ds.PizzaTypes {
		counts[pt.Category]++
	}

	rows := make([]reporting.CategoryCount, 0, len(counts))
	for c, n := range counts {
		rows = append(rows, reporting.CategoryCount{Category: c, Count: n})
	}
	slices.SortFunc(rows, func(a, b reporting.CategoryCount) int {
		if c := cmp.Compare(a.Category.DisplayRank(), b.Category.DisplayRank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return rows, nil
}

func (e *Engine) AveragePizzasPerDay(_ context.Context) (int, error) {
	orderDate := make(map[int]time.Time, len(e.ds.Orders))
	for _, o := range e.ds.Orders {
		orderDate[o.ID] = o.Date
	}

	perDay := make(map[time.Time]int)
	for _, li := range e.ds.LineItems {
		perDay[orderDate[li.OrderID]] += li.Quantity
	}

	total := 0
	for _, q := range perDay {
		total += q
	}
	return reporting.RoundedAverage(total, len(perDay)), nil
}

func (e *Engine) revenueByType() map[string]decimal.Decimal {
	byType := make(map[string]decimal.Decimal)
	for _, s := range e.sales() {
		byType[s.kind.ID] = byType[s.kind.ID].Add(s.revenue())
	}
	return byType
}

func (e *Engine) TopPizzaTypesByRevenue(_ context.Context, n int) ([]reporting.NamedRevenue, error) {
	byType := e.revenueByType()
	rows := make([]reporting.NamedRevenue, 0, len(byType))
	for id, rev := range byType {
		rows = append(rows, reporting.NamedRevenue{Name: e.types[id].Name, Revenue: rev})
	}
	return reporting.Top(rows, n, reporting.CompareNamedRevenue), nil
}

func (e *Engine) RevenueShareByPizzaType(_ context.Context) ([]reporting.RevenueShare, error) {
	byType := e.revenueByType()

	ranked := make([]reporting.NamedRevenue, 0, len(byType))
	total := decimal.Zero
	for id, rev := range byType {
		ranked = append(ranked, reporting.NamedRevenue{Name: e.types[id].Name, Revenue: rev})
		total = total.Add(rev)
	}
	slices.SortFunc(ranked, reporting.CompareNamedRevenue)

	rows := make([]reporting.RevenueShare, len(ranked))
	for i, r := range ranked {
		rows[i] = reporting.NewRevenueShare(r.Name, r.Revenue, total)
	}
	return rows, nil
}

func (e *Engine) CumulativeRevenueByMonth(_ context.Context) ([]reporting.MonthRevenue, error) {
	orderMonth := make(map[int]time.Month, len(e.ds.Orders))
	for _, o := range e.ds.Orders {
		orderMonth[o.ID] = o.Date.Month()
	}

	byMonth := make(map[time.Month]decimal.Decimal)
	for _, s := range e.sales() {
		m := orderMonth[s.item.OrderID]
		byMonth[m] = byMonth[m].Add(s.revenue())
	}

	rows := make([]reporting.MonthRevenue, 0, len(byMonth))
	for m := time.January; m <= time.December; m++ {
		if rev, ok := byMonth[m]; ok {
			rows = append(rows, reporting.MonthRevenue{Month: m, Revenue: rev})
		}
	}
	return reporting.Cumulative(rows), nil
}

func (e *Engine) TopPizzaTypesPerCategory(_ context.Context, n int) ([]reporting.RankedPizzaType, error) {
	byType := e.revenueByType()
	rows := make([]reporting.RankedPizzaType, 0, len(byType))
	for id, rev := range byType {
		pt := e.types[id]
		rows = append(rows, reporting.RankedPizzaType{Category: pt.Category, Name: pt.Name, Revenue: rev})
	}
	return reporting.DenseRank(rows, n), nil
}
