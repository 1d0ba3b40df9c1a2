package domain

import "time"

// Order is one customer transaction. Time holds the time-of-day on the
// zero date; Date holds the calendar date at midnight UTC.
type Order struct {
	ID   int
	Date time.Time
	Time time.Time
}

// PlacedAt combines Date and Time into a single instant.
func (o Order) PlacedAt() time.Time {
	return time.Date(o.Date.Year(), o.Date.Month(), o.Date.Day(),
		o.Time.Hour(), o.Time.Minute(), o.Time.Second(), 0, time.UTC)
}

// OrderLineItem is one pizza SKU within an order.
type OrderLineItem struct {
	ID       int
	OrderID  int
	PizzaID  string
	Quantity int
}
