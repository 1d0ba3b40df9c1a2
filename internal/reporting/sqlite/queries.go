package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pizza-sales/internal/reporting"
	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
)

// sales joins every line item with its pizza and pizza type.
const sales = `
	order_details od
	JOIN pizzas p       ON p.pizza_id = od.pizza_id
	JOIN pizza_types pt ON pt.pizza_type_id = p.pizza_type_id`

// revenue is rounded to cents so float noise never reaches the decimal
// layer or splits a dense-rank tie.
const revenue = `ROUND(SUM(od.quantity * p.price), 2)`

// categoryOrder sorts a category column into display order.
var categoryOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE %s")
	for i, c := range domain.Categories {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", c, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(domain.Categories))
	return b.String()
}()

func (s *Store) TotalOrders(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT order_id) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: total orders: %w", err)
	}
	return n, nil
}

func (s *Store) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	q := `SELECT COALESCE(` + revenue + `, 0) FROM order_details od JOIN pizzas p ON p.pizza_id = od.pizza_id`

	var total float64
	if err := s.db.QueryRowContext(ctx, q).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sqlite: total revenue: %w", err)
	}
	return cents(total), nil
}

func (s *Store) HighestPricedPizzas(ctx context.Context) ([]reporting.PricedPizza, error) {
	const q = `
		SELECT p.pizza_id, pt.name, p.size, p.price
		FROM   pizzas p
		JOIN   pizza_types pt ON pt.pizza_type_id = p.pizza_type_id
		WHERE  p.price = (SELECT MAX(price) FROM pizzas)
		ORDER  BY p.pizza_id`

	var out []reporting.PricedPizza
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var r reporting.PricedPizza
		var price float64
		if err := rows.Scan(&r.PizzaID, &r.Name, &r.Size, &price); err != nil {
			return err
		}
		r.Price = decimal.NewFromFloat(price)
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: highest priced pizzas: %w", err)
	}
	return out, nil
}

func (s *Store) MostCommonSize(ctx context.Context) (reporting.SizeCount, error) {
	const q = `
		SELECT p.size, COUNT(od.order_details_id) AS line_items
		FROM   order_details od
		JOIN   pizzas p ON p.pizza_id = od.pizza_id
		GROUP  BY p.size
		ORDER  BY line_items DESC, p.size ASC
		LIMIT  1`

	var r reporting.SizeCount
	err := s.db.QueryRowContext(ctx, q).Scan(&r.Size, &r.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return reporting.SizeCount{}, reporting.ErrNoData
	}
	if err != nil {
		return reporting.SizeCount{}, fmt.Errorf("sqlite: most common size: %w", err)
	}
	return r, nil
}

func (s *Store) TopPizzaTypesByQuantity(ctx context.Context, n int) ([]reporting.NamedQuantity, error) {
	q := `
		SELECT pt.name, SUM(od.quantity) AS quantity
		FROM ` + sales + `
		GROUP  BY pt.name
		ORDER  BY quantity DESC, pt.name ASC
		LIMIT  ?`

	var out []reporting.NamedQuantity
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var r reporting.NamedQuantity
		if err := rows.Scan(&r.Name, &r.Quantity); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	}, limit(n))
	if err != nil {
		return nil, fmt.Errorf("sqlite: top pizza types by quantity: %w", err)
	}
	return out, nil
}

func (s *Store) QuantityByCategory(ctx context.Context) ([]reporting.CategoryQuantity, error) {
	q := `
		SELECT pt.category, SUM(od.quantity) AS quantity
		FROM ` + sales + `
		GROUP  BY pt.category
		ORDER  BY quantity DESC, pt.category ASC`

	var out []reporting.CategoryQuantity
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var r reporting.CategoryQuantity
		if err := rows.Scan(&r.Category, &r.Quantity); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: quantity by category: %w", err)
	}
	return out, nil
}

func (s *Store) OrdersByDayHour(ctx context.Context) ([]reporting.DayHourCount, error) {
	const q = `
		SELECT CAST(strftime('%d', order_date) AS INTEGER) AS day,
		       CAST(strftime('%H', order_time) AS INTEGER) AS hour,
		       COUNT(order_id)
		FROM   orders
		GROUP  BY day, hour
		ORDER  BY day, hour`

	var out []reporting.DayHourCount
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var r reporting.DayHourCount
		if err := rows.Scan(&r.Day, &r.Hour, &r.Orders); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: orders by day and hour: %w", err)
	}
	return out, nil
}

func (s *Store) OrdersByHour(ctx context.Context) ([]reporting.HourCount, error) {
	const q = `
		SELECT CAST(strftime('%H', order_time) AS INTEGER) AS hour, COUNT(order_id)
		FROM   orders
		GROUP  BY hour
		ORDER  BY hour`

	var out []reporting.HourCount
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var r reporting.HourCount
		if err := rows.Scan(&r.Hour, &r.Orders); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: orders by hour: %w", err)
	}
	return out, nil
}

func (s *Store) PizzaTypesPerCategory(ctx context.Context) ([]reporting.CategoryCount, error) {
	q := `
		SELECT category, COUNT(pizza_type_id)
		FROM   pizza_types
		GROUP  BY category
		ORDER  BY ` + fmt.Sprintf(categoryOrder, "category") + `, category`

	var out []reporting.CategoryCount
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var r reporting.CategoryCount
		if err := rows.Scan(&r.Category, &r.Count); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: pizza types per category: %w", err)
	}
	return out, nil
}

func (s *Store) AveragePizzasPerDay(ctx context.Context) (int, error) {
	const q = `
		SELECT COALESCE(ROUND(AVG(quantity), 0), 0)
		FROM (
			SELECT o.order_date, SUM(od.quantity) AS quantity
			FROM   orders o
			JOIN   order_details od ON od.order_id = o.order_id
			GROUP  BY o.order_date
		)`

	var avg float64
	if err := s.db.QueryRowContext(ctx, q).Scan(&avg); err != nil {
		return 0, fmt.Errorf("sqlite: average pizzas per day: %w", err)
	}
	return int(avg), nil
}

func (s *Store) TopPizzaTypesByRevenue(ctx context.Context, n int) ([]reporting.NamedRevenue, error) {
	q := `
		SELECT pt.name, ` + revenue + ` AS revenue
		FROM ` + sales + `
		GROUP  BY pt.pizza_type_id, pt.name
		ORDER  BY revenue DESC, pt.name ASC
		LIMIT  ?`

	var out []reporting.NamedRevenue
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var r reporting.NamedRevenue
		var rev float64
		if err := rows.Scan(&r.Name, &rev); err != nil {
			return err
		}
		r.Revenue = cents(rev)
		out = append(out, r)
		return nil
	}, limit(n))
	if err != nil {
		return nil, fmt.Errorf("sqlite: top pizza types by revenue: %w", err)
	}
	return out, nil
}

func (s *Store) RevenueShareByPizzaType(ctx context.Context) ([]reporting.RevenueShare, error) {
	q := `
		SELECT pt.name,
		       ` + revenue + ` AS revenue,
		       ROUND(SUM(SUM(od.quantity * p.price)) OVER (), 2) AS total
		FROM ` + sales + `
		GROUP  BY pt.pizza_type_id, pt.name
		ORDER  BY revenue DESC, pt.name ASC`

	var out []reporting.RevenueShare
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var name string
		var rev, total float64
		if err := rows.Scan(&name, &rev, &total); err != nil {
			return err
		}
		out = append(out, reporting.NewRevenueShare(name, cents(rev), cents(total)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: revenue share by pizza type: %w", err)
	}
	return out, nil
}

func (s *Store) CumulativeRevenueByMonth(ctx context.Context) ([]reporting.MonthRevenue, error) {
	const q = `
		SELECT CAST(strftime('%m', o.order_date) AS INTEGER) AS month,
		       ROUND(SUM(od.quantity * p.price), 2) AS revenue,
		       ROUND(SUM(SUM(od.quantity * p.price)) OVER (ORDER BY CAST(strftime('%m', o.order_date) AS INTEGER)), 2)
		FROM   orders o
		JOIN   order_details od ON od.order_id = o.order_id
		JOIN   pizzas p         ON p.pizza_id = od.pizza_id
		GROUP  BY month
		ORDER  BY month`

	var out []reporting.MonthRevenue
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var month int
		var rev, cumulative float64
		if err := rows.Scan(&month, &rev, &cumulative); err != nil {
			return err
		}
		out = append(out, reporting.MonthRevenue{
			Month:      time.Month(month),
			Revenue:    cents(rev),
			Cumulative: cents(cumulative),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: cumulative revenue by month: %w", err)
	}
	return out, nil
}

func (s *Store) TopPizzaTypesPerCategory(ctx context.Context, n int) ([]reporting.RankedPizzaType, error) {
	q := `
		WITH revenue_by_type AS (
			SELECT pt.category, pt.name, ` + revenue + ` AS revenue
			FROM ` + sales + `
			GROUP  BY pt.pizza_type_id, pt.category, pt.name
		), ranked AS (
			SELECT category, name, revenue,
			       DENSE_RANK() OVER (PARTITION BY category ORDER BY revenue DESC) AS rnk
			FROM   revenue_by_type
		)
		SELECT category, name, revenue, rnk
		FROM   ranked
		WHERE  rnk <= ?
		ORDER  BY ` + fmt.Sprintf(categoryOrder, "category") + `, category, rnk, name`

	var out []reporting.RankedPizzaType
	err := scanAll(ctx, s.db, q, func(rows *sql.Rows) error {
		var r reporting.RankedPizzaType
		var rev float64
		if err := rows.Scan(&r.Category, &r.Name, &rev, &r.Rank); err != nil {
			return err
		}
		r.Revenue = cents(rev)
		out = append(out, r)
		return nil
	}, n)
	if err != nil {
		return nil, fmt.Errorf("sqlite: top pizza types per category: %w", err)
	}
	return out, nil
}

// cents converts a SQL REAL already rounded to two places.
func cents(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// limit maps a negative n to SQLite's "no limit".
func limit(n int) int {
	if n < 0 {
		return -1
	}
	return n
}
