package domain

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryClassic Category = "Classic"
	CategoryVeggie  Category = "Veggie"
	CategoryChicken Category = "Chicken"
	CategorySupreme Category = "Supreme"
)

// Categories lists the categories in display order.
var Categories = []Category{CategoryClassic, CategoryVeggie, CategoryChicken, CategorySupreme}

// DisplayRank returns the position of c in Categories, or len(Categories)
// for a category outside the known set.
func (c Category) DisplayRank() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}

// PizzaType is a recipe, independent of size and price.
type PizzaType struct {
	ID          string
	Name        string
	Category    Category
	Ingredients []string
}

// Pizza is a sellable SKU: one size of a PizzaType at a unit price.
type Pizza struct {
	ID          string
	PizzaTypeID string
	Size        string
	Price       decimal.Decimal
}
