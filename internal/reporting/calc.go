package reporting

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NewRevenueShare computes the share of total held by revenue. A zero total
// yields a zero share rather than a division error.
func NewRevenueShare(name string, revenue, total decimal.Decimal) RevenueShare {
	share := decimal.Zero
	if !total.IsZero() {
		share = revenue.Div(total)
	}
	return RevenueShare{
		Name:    name,
		Revenue: revenue,
		Share:   share,
		Percent: share.Mul(hundred).StringFixed(1) + "%",
	}
}

// RoundedAverage divides total by count and rounds half away from zero.
func RoundedAverage(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

// CompareNamedRevenue orders by revenue descending, then name ascending.
func CompareNamedRevenue(a, b NamedRevenue) int {
	if c := b.Revenue.Cmp(a.Revenue); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// CompareNamedQuantity orders by quantity descending, then name ascending.
func CompareNamedQuantity(a, b NamedQuantity) int {
	if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// CompareRanked orders by category display order, then rank, then name.
func CompareRanked(a, b RankedPizzaType) int {
	if c := cmp.Compare(a.Category.DisplayRank(), b.Category.DisplayRank()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// DenseRank assigns ranks within each category by revenue descending; equal
// revenues share a rank and the next distinct revenue takes the next
// integer. Rows ranked above n are dropped, so a category can hold more than
// n rows when revenues tie. The input is not modified.
func DenseRank(rows []RankedPizzaType, n int) []RankedPizzaType {
	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b RankedPizzaType) int {
		if c := cmp.Compare(a.Category.DisplayRank(), b.Category.DisplayRank()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	out := make([]RankedPizzaType, 0, len(sorted))
	for i, row := range sorted {
		switch {
		case i == 0 || row.Category != sorted[i-1].Category:
			row.Rank = 1
		case row.Revenue.Equal(sorted[i-1].Revenue):
			row.Rank = sorted[i-1].Rank
		default:
			row.Rank = sorted[i-1].Rank + 1
		}
		sorted[i].Rank = row.Rank
		if row.Rank <= n {
			out = append(out, row)
		}
	}
	return out
}

// Cumulative fills the running total over rows already in month order.
func Cumulative(rows []MonthRevenue) []MonthRevenue {
	running := decimal.Zero
	for i := range rows {
		running = running.Add(rows[i].Revenue)
		rows[i].Cumulative = running
	}
	return rows
}

// Top returns the first n rows after sorting with compare. A negative n
// keeps every row.
func Top[T any](rows []T, n int, compare func(a, b T) int) []T {
	slices.SortFunc(rows, compare)
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
