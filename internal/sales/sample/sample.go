// Package sample provides a small, deterministic pizza sales dataset used
// by the CLI's --sample mode and by tests across the repository.
package sample

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
)

// Dataset returns a fresh copy of the sample data. Callers may mutate it.
func Dataset() *domain.Dataset {
	return &domain.Dataset{
		PizzaTypes: pizzaTypes(),
		Pizzas:     pizzas(),
		Orders:     orders(),
		LineItems:  lineItems(),
	}
}

func pizzaTypes() []domain.PizzaType {
	return []domain.PizzaType{
		{ID: "bbq_ckn", Name: "The Barbecue Chicken Pizza", Category: domain.CategoryChicken,
			Ingredients: []string{"Barbecued Chicken", "Red Peppers", "Green Peppers", "Tomatoes", "Red Onions", "Barbecue Sauce"}},
		{ID: "cali_ckn", Name: "The California Chicken Pizza", Category: domain.CategoryChicken,
			Ingredients: []string{"Chicken", "Artichoke", "Spinach", "Garlic", "Jalapeno Peppers", "Fontina Cheese", "Gouda Cheese"}},
		{ID: "classic_dlx", Name: "The Classic Deluxe Pizza", Category: domain.CategoryClassic,
			Ingredients: []string{"Pepperoni", "Mushrooms", "Red Onions", "Red Peppers", "Bacon"}},
		{ID: "hawaiian", Name: "The Hawaiian Pizza", Category: domain.CategoryClassic,
			Ingredients: []string{"Sliced Ham", "Pineapple", "Mozzarella Cheese"}},
		{ID: "pepperoni", Name: "The Pepperoni Pizza", Category: domain.CategoryClassic,
			Ingredients: []string{"Mozzarella Cheese", "Pepperoni"}},
		{ID: "big_meat", Name: "The Big Meat Pizza", Category: domain.CategoryClassic,
			Ingredients: []string{"Bacon", "Pepperoni", "Italian Sausage", "Chorizo Sausage"}},
		{ID: "the_greek", Name: "The Greek Pizza", Category: domain.CategoryClassic,
			Ingredients: []string{"Kalamata Olives", "Feta Cheese", "Tomatoes", "Garlic", "Beef Chuck Roast", "Red Onions"}},
		{ID: "five_cheese", Name: "The Five Cheese Pizza", Category: domain.CategoryVeggie,
			Ingredients: []string{"Mozzarella Cheese", "Provolone Cheese", "Smoked Gouda Cheese", "Romano Cheese", "Blue Cheese", "Garlic"}},
		{ID: "four_cheese", Name: "The Four Cheese Pizza", Category: domain.CategoryVeggie,
			Ingredients: []string{"Ricotta Cheese", "Gorgonzola Piccante Cheese", "Mozzarella Cheese", "Parmigiano Reggiano Cheese", "Garlic"}},
		{ID: "veggie_veg", Name: "The Vegetables + Vegetables Pizza", Category: domain.CategoryVeggie,
			Ingredients: []string{"Mushrooms", "Tomatoes", "Red Peppers", "Green Peppers", "Red Onions", "Zucchini", "Spinach", "Garlic"}},
		{ID: "ital_supr", Name: "The Italian Supreme Pizza", Category: domain.CategorySupreme,
			Ingredients: []string{"Calabrese Salami", "Capocollo", "Tomatoes", "Red Onions", "Green Olives", "Garlic"}},
		{ID: "spicy_ital", Name: "The Spicy Italian Pizza", Category: domain.CategorySupreme,
			Ingredients: []string{"Capocollo", "Tomatoes", "Goat Cheese", "Artichokes", "Peperoncini verdi", "Garlic"}},
	}
}

func pizzas() []domain.Pizza {
	rows := []struct {
		id, typeID, size, price string
	}{
		{"bbq_ckn_s", "bbq_ckn", "S", "12.75"},
		{"bbq_ckn_m", "bbq_ckn", "M", "16.75"},
		{"bbq_ckn_l", "bbq_ckn", "L", "20.75"},
		{"cali_ckn_s", "cali_ckn", "S", "12.75"},
		{"cali_ckn_m", "cali_ckn", "M", "16.75"},
		{"cali_ckn_l", "cali_ckn", "L", "20.75"},
		{"classic_dlx_s", "classic_dlx", "S", "12.00"},
		{"classic_dlx_m", "classic_dlx", "M", "16.00"},
		{"classic_dlx_l", "classic_dlx", "L", "20.50"},
		{"hawaiian_s", "hawaiian", "S", "10.50"},
		{"hawaiian_m", "hawaiian", "M", "13.25"},
		{"hawaiian_l", "hawaiian", "L", "16.50"},
		{"pepperoni_s", "pepperoni", "S", "9.75"},
		{"pepperoni_m", "pepperoni", "M", "12.50"},
		{"pepperoni_l", "pepperoni", "L", "15.25"},
		{"big_meat_s", "big_meat", "S", "12.00"},
		{"the_greek_xl", "the_greek", "XL", "25.50"},
		{"the_greek_xxl", "the_greek", "XXL", "35.95"},
		{"five_cheese_l", "five_cheese", "L", "18.50"},
		{"four_cheese_m", "four_cheese", "M", "14.75"},
		{"four_cheese_l", "four_cheese", "L", "17.95"},
		{"veggie_veg_s", "veggie_veg", "S", "12.00"},
		{"veggie_veg_m", "veggie_veg", "M", "16.00"},
		{"ital_supr_m", "ital_supr", "M", "16.50"},
		{"ital_supr_l", "ital_supr", "L", "20.75"},
		{"spicy_ital_l", "spicy_ital", "L", "20.75"},
	}

	out := make([]domain.Pizza, len(rows))
	for i, r := range rows {
		out[i] = domain.Pizza{ID: r.id, PizzaTypeID: r.typeID, Size: r.size, Price: decimal.RequireFromString(r.price)}
	}
	return out
}

func orders() []domain.Order {
	rows := []struct {
		id         int
		date, time string
	}{
		{1, "2015-01-01", "11:38:36"},
		{2, "2015-01-01", "11:57:40"},
		{3, "2015-01-01", "12:12:28"},
		{4, "2015-01-02", "12:16:31"},
		{5, "2015-01-02", "18:21:42"},
		{6, "2015-02-01", "11:33:00"},
		{7, "2015-02-14", "19:05:10"},
		{8, "2015-02-14", "20:45:00"},
		{9, "2015-03-03", "13:10:25"},
		{10, "2015-03-15", "12:59:59"},
		{11, "2015-12-31", "21:30:00"},
		{12, "2015-12-31", "22:15:00"},
	}

	out := make([]domain.Order, len(rows))
	for i, r := range rows {
		out[i] = domain.Order{ID: r.id, Date: mustParse(time.DateOnly, r.date), Time: mustParse(time.TimeOnly, r.time)}
	}
	return out
}

func lineItems() []domain.OrderLineItem {
	rows := []struct {
		id, orderID int
		pizzaID     string
		quantity    int
	}{
		{1, 1, "hawaiian_m", 1},
		{2, 2, "classic_dlx_m", 1},
		{3, 2, "five_cheese_l", 1},
		{4, 2, "ital_supr_l", 1},
		{5, 2, "veggie_veg_s", 1},
		{6, 3, "spicy_ital_l", 1},
		{7, 4, "pepperoni_m", 2},
		{8, 4, "bbq_ckn_l", 1},
		{9, 5, "the_greek_xl", 1},
		{10, 5, "bbq_ckn_m", 1},
		{11, 6, "cali_ckn_l", 2},
		{12, 6, "classic_dlx_l", 1},
		{13, 7, "four_cheese_m", 1},
		{14, 7, "hawaiian_s", 3},
		{15, 8, "the_greek_xxl", 1},
		{16, 8, "pepperoni_l", 1},
		{17, 9, "big_meat_s", 2},
		{18, 9, "bbq_ckn_s", 1},
		{19, 10, "ital_supr_m", 1},
		{20, 10, "classic_dlx_m", 2},
		{21, 11, "four_cheese_l", 1},
		{22, 11, "cali_ckn_m", 1},
		{23, 12, "hawaiian_l", 1},
		{24, 12, "veggie_veg_m", 2},
	}

	out := make([]domain.OrderLineItem, len(rows))
	for i, r := range rows {
		out[i] = domain.OrderLineItem{ID: r.id, OrderID: r.orderID, PizzaID: r.pizzaID, Quantity: r.quantity}
	}
	return out
}

func mustParse(layout, value string) time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		panic(err)
	}
	return t
}
