package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validDataset() *Dataset {
	return &Dataset{
		PizzaTypes: []PizzaType{{ID: "hawaiian", Name: "The Hawaiian Pizza", Category: CategoryClassic}},
		Pizzas:     []Pizza{{ID: "hawaiian_m", PizzaTypeID: "hawaiian", Size: "M", Price: decimal.RequireFromString("13.25")}},
		Orders:     []Order{{ID: 1}},
		LineItems:  []OrderLineItem{{ID: 1, OrderID: 1, PizzaID: "hawaiian_m", Quantity: 1}},
	}
}

func TestDataset_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Dataset)
		want   string
	}{
		{"valid", func(*Dataset) {}, ""},
		{"duplicate type", func(d *Dataset) { d.PizzaTypes = append(d.PizzaTypes, d.PizzaTypes[0]) }, `duplicate pizza type "hawaiian"`},
		{"unknown type", func(d *Dataset) { d.Pizzas[0].PizzaTypeID = "nope" }, `unknown pizza type "nope"`},
		{"negative price", func(d *Dataset) { d.Pizzas[0].Price = decimal.NewFromInt(-1) }, "negative price"},
		{"unknown order", func(d *Dataset) { d.LineItems[0].OrderID = 7 }, "unknown order 7"},
		{"unknown pizza", func(d *Dataset) { d.LineItems[0].PizzaID = "x" }, `unknown pizza "x"`},
		{"zero quantity", func(d *Dataset) { d.LineItems[0].Quantity = 0 }, "quantity 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := validDataset()
			tt.mutate(ds)
			err := ds.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestCategory_DisplayRank(t *testing.T) {
	for i, c := range Categories {
		assert.Equal(t, i, c.DisplayRank(), string(c))
	}
	assert.Greater(t, Category("Dessert").DisplayRank(), CategorySupreme.DisplayRank())
}

func TestOrder_PlacedAt(t *testing.T) {
	o := Order{
		ID:   1,
		Date: time.Date(2015, time.February, 1, 0, 0, 0, 0, time.UTC),
		Time: time.Date(0, 1, 1, 11, 38, 36, 0, time.UTC),
	}
	assert.Equal(t, time.Date(2015, time.February, 1, 11, 38, 36, 0, time.UTC), o.PlacedAt())
}
