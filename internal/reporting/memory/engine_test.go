package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/pizza-sales/internal/reporting"
	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
	"github.com/jcmexdev/pizza-sales/internal/sales/sample"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(layout, value string) time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func order(id int, date, clock string) domain.Order {
	return domain.Order{ID: id, Date: at(time.DateOnly, date), Time: at(time.TimeOnly, clock)}
}

func TestEngine_TwoOrdersOfTenDollarPizza(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(&domain.Dataset{
		PizzaTypes: []domain.PizzaType{{ID: "marg", Name: "Margherita", Category: domain.CategoryClassic}},
		Pizzas:     []domain.Pizza{{ID: "marg_m", PizzaTypeID: "marg", Size: "M", Price: dec("10")}},
		Orders:     []domain.Order{order(1, "2015-01-01", "12:00:00"), order(2, "2015-01-02", "13:00:00")},
		LineItems: []domain.OrderLineItem{
			{ID: 1, OrderID: 1, PizzaID: "marg_m", Quantity: 2},
			{ID: 2, OrderID: 2, PizzaID: "marg_m", Quantity: 2},
		},
	})

	total, err := e.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("40")), "total revenue = %s", total)

	shares, err := e.RevenueShareByPizzaType(ctx)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "100.0%", shares[0].Percent)
	assert.True(t, shares[0].Share.Equal(decimal.NewFromInt(1)))

	avg, err := e.AveragePizzasPerDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, avg)
}

func TestEngine_Sample(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(sample.Dataset())

	orders, err := e.TotalOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, orders)

	total, err := e.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "517.15", total.StringFixed(2))

	highest, err := e.HighestPricedPizzas(ctx)
	require.NoError(t, err)
	require.Len(t, highest, 1)
	assert.Equal(t, "the_greek_xxl", highest[0].PizzaID)
	assert.Equal(t, "The Greek Pizza", highest[0].Name)

	size, err := e.MostCommonSize(ctx)
	require.NoError(t, err)
	// L and M both appear on 9 line items; the lower size code wins.
	assert.Equal(t, reporting.SizeCount{Size: "L", Count: 9}, size)

	top, err := e.TopPizzaTypesByQuantity(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []reporting.NamedQuantity{
		{Name: "The Hawaiian Pizza", Quantity: 5},
		{Name: "The Classic Deluxe Pizza", Quantity: 4},
		{Name: "The Barbecue Chicken Pizza", Quantity: 3},
		{Name: "The California Chicken Pizza", Quantity: 3},
		{Name: "The Pepperoni Pizza", Quantity: 3},
	}, top)

	byCategory, err := e.QuantityByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []reporting.CategoryQuantity{
		{Category: domain.CategoryClassic, Quantity: 16},
		{Category: domain.CategoryChicken, Quantity: 6},
		{Category: domain.CategoryVeggie, Quantity: 6},
		{Category: domain.CategorySupreme, Quantity: 3},
	}, byCategory)

	avg, err := e.AveragePizzasPerDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, avg)

	byRevenue, err := e.TopPizzaTypesByRevenue(ctx, 3)
	require.NoError(t, err)
	require.Len(t, byRevenue, 3)
	assert.Equal(t, "The Classic Deluxe Pizza", byRevenue[0].Name)
	assert.Equal(t, "68.50", byRevenue[0].Revenue.StringFixed(2))
	assert.Equal(t, "The Greek Pizza", byRevenue[1].Name)
	assert.Equal(t, "The Hawaiian Pizza", byRevenue[2].Name)

	shares, err := e.RevenueShareByPizzaType(ctx)
	require.NoError(t, err)
	require.Len(t, shares, 12)
	assert.Equal(t, "13.2%", shares[0].Percent)
	assert.Equal(t, "3.6%", shares[len(shares)-1].Percent)
}

func TestEngine_OrdersByDayHourConflatesMonths(t *testing.T) {
	e := NewEngine(sample.Dataset())

	rows, err := e.OrdersByDayHour(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	// Two orders on 1 Jan and one on 1 Feb, all in the 11 o'clock hour.
	assert.Equal(t, reporting.DayHourCount{Day: 1, Hour: 11, Orders: 3}, rows[0])
	assert.Len(t, rows, 10)

	byHour, err := e.OrdersByHour(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reporting.HourCount{Hour: 11, Orders: 3}, byHour[0])
	assert.Equal(t, reporting.HourCount{Hour: 12, Orders: 3}, byHour[1])
}

func TestEngine_CumulativeRevenueIsChronological(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(sample.Dataset())

	rows, err := e.CumulativeRevenueByMonth(ctx)
	require.NoError(t, err)

	var months []time.Month
	var cumulative []string
	for _, r := range rows {
		months = append(months, r.Month)
		cumulative = append(cumulative, r.Cumulative.StringFixed(2))
	}
	// December sorts before February and March by name but must come last.
	assert.Equal(t, []time.Month{time.January, time.February, time.March, time.December}, months)
	assert.Equal(t, []string{"189.25", "348.70", "433.95", "517.15"}, cumulative)

	total, err := e.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, rows[len(rows)-1].Cumulative.Equal(total))
}

func TestEngine_TopPizzaTypesPerCategory(t *testing.T) {
	rows, err := NewEngine(sample.Dataset()).TopPizzaTypesPerCategory(context.Background(), 3)
	require.NoError(t, err)

	type row struct {
		category domain.Category
		rank     int
		name     string
	}
	var got []row
	for _, r := range rows {
		got = append(got, row{r.Category, r.Rank, r.Name})
	}
	assert.Equal(t, []row{
		{domain.CategoryClassic, 1, "The Classic Deluxe Pizza"},
		{domain.CategoryClassic, 2, "The Greek Pizza"},
		{domain.CategoryClassic, 3, "The Hawaiian Pizza"},
		{domain.CategoryVeggie, 1, "The Vegetables + Vegetables Pizza"},
		{domain.CategoryVeggie, 2, "The Four Cheese Pizza"},
		{domain.CategoryVeggie, 3, "The Five Cheese Pizza"},
		{domain.CategoryChicken, 1, "The California Chicken Pizza"},
		{domain.CategoryChicken, 2, "The Barbecue Chicken Pizza"},
		{domain.CategorySupreme, 1, "The Italian Supreme Pizza"},
		{domain.CategorySupreme, 2, "The Spicy Italian Pizza"},
	}, got)
}

func TestEngine_HighestPricedReturnsAllTies(t *testing.T) {
	e := NewEngine(&domain.Dataset{
		PizzaTypes: []domain.PizzaType{
			{ID: "a", Name: "A", Category: domain.CategoryClassic},
			{ID: "b", Name: "B", Category: domain.CategoryVeggie},
		},
		Pizzas: []domain.Pizza{
			{ID: "b_l", PizzaTypeID: "b", Size: "L", Price: dec("20.5")},
			{ID: "a_s", PizzaTypeID: "a", Size: "S", Price: dec("9")},
			{ID: "a_l", PizzaTypeID: "a", Size: "L", Price: dec("20.50")},
		},
	})

	rows, err := e.HighestPricedPizzas(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a_l", rows[0].PizzaID)
	assert.Equal(t, "b_l", rows[1].PizzaID)
}

func TestEngine_EmptyDataset(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(&domain.Dataset{})

	_, err := e.MostCommonSize(ctx)
	assert.ErrorIs(t, err, reporting.ErrNoData)

	total, err := e.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	shares, err := e.RevenueShareByPizzaType(ctx)
	require.NoError(t, err)
	assert.Empty(t, shares)

	avg, err := e.AveragePizzasPerDay(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)

	cumulative, err := e.CumulativeRevenueByMonth(ctx)
	require.NoError(t, err)
	assert.Empty(t, cumulative)
}
