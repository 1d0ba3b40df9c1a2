package reporting

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
)

// Stats summarises the size of a dataset for logging. Cache keys use
// Fingerprint, which covers the contents as well.
type Stats struct {
	Orders     int
	LineItems  int
	Quantity   int
	Pizzas     int
	PizzaTypes int
	MaxOrderID int
}

func StatsOf(ds *domain.Dataset) Stats {
	s := Stats{
		Orders:     len(ds.Orders),
		LineItems:  len(ds.LineItems),
		Pizzas:     len(ds.Pizzas),
		PizzaTypes: len(ds.PizzaTypes),
	}
	for _, o := range ds.Orders {
		s.MaxOrderID = max(s.MaxOrderID, o.ID)
	}
	for _, li := range ds.LineItems {
		s.Quantity += li.Quantity
	}
	return s
}

// Fingerprint digests every row of ds: ids, prices, sizes, categories,
// ingredients, order dates and times, and each line item's pizza and
// quantity. Row order within a table does not affect the result, so the
// same data read back from any store yields the same value.
func Fingerprint(ds *domain.Dataset) string {
	d := xxhash.New()
	table := func(name string, rows []string) {
		slices.Sort(rows)
		_, _ = d.WriteString(name)
		_, _ = d.WriteString("\n")
		for _, row := range rows {
			_, _ = d.WriteString(row)
			_, _ = d.WriteString("\n")
		}
	}

	table("pizza_types", mapRows(ds.PizzaTypes, func(pt domain.PizzaType) []string {
		return []string{pt.ID, pt.Name, string(pt.Category), strings.Join(pt.Ingredients, ",")}
	}))
	table("pizzas", mapRows(ds.Pizzas, func(p domain.Pizza) []string {
		return []string{p.ID, p.PizzaTypeID, p.Size, p.Price.String()}
	}))
	table("orders", mapRows(ds.Orders, func(o domain.Order) []string {
		return []string{strconv.Itoa(o.ID), o.PlacedAt().Format(time.DateTime)}
	}))
	table("order_details", mapRows(ds.LineItems, func(li domain.OrderLineItem) []string {
		return []string{strconv.Itoa(li.ID), strconv.Itoa(li.OrderID), li.PizzaID, strconv.Itoa(li.Quantity)}
	}))

	return fmt.Sprintf("%016x", d.Sum64())
}

func mapRows[T any](rows []T, fields func(T) []string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = strings.Join(fields(row), "\x1f")
	}
	return out
}
