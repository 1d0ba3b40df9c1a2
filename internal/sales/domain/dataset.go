package domain

import "fmt"

// Dataset is the full set of sales tables the reports run over.
type Dataset struct {
	Orders     []Order
	PizzaTypes []PizzaType
	Pizzas     []Pizza
	LineItems  []OrderLineItem
}

// Validate checks referential integrity and the quantity and price
// invariants. The SQL store enforces the same rules through constraints.
func (d *Dataset) Validate() error {
	types := make(map[string]struct{}, len(d.PizzaTypes))
	for _, pt := range d.PizzaTypes {
		if _, dup := types[pt.ID]; dup {
			return fmt.Errorf("duplicate pizza type %q", pt.ID)
		}
		types[pt.ID] = struct{}{}
	}

	pizzas := make(map[string]struct{}, len(d.Pizzas))
	for _, p := range d.Pizzas {
		if _, ok := types[p.PizzaTypeID]; !ok {
			return fmt.Errorf("pizza %q references unknown pizza type %q", p.ID, p.PizzaTypeID)
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("pizza %q has negative price %s", p.ID, p.Price)
		}
		pizzas[p.ID] = struct{}{}
	}

	orders := make(map[int]struct{}, len(d.Orders))
	for _, o := range d.Orders {
		orders[o.ID] = struct{}{}
	}

	for _, li := range d.LineItems {
		if _, ok := orders[li.OrderID]; !ok {
			return fmt.Errorf("line item %d references unknown order %d", li.ID, li.OrderID)
		}
		if _, ok := pizzas[li.PizzaID]; !ok {
			return fmt.Errorf("line item %d references unknown pizza %q", li.ID, li.PizzaID)
		}
		if li.Quantity < 1 {
			return fmt.Errorf("line item %d has quantity %d", li.ID, li.Quantity)
		}
	}
	return nil
}
