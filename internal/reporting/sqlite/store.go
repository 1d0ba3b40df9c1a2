// Package sqlite holds the relational pizza sales schema and a
// reporting.Reporter that answers every report with a single SQL query.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pizza-sales/internal/pkg/sqlitedb"
	"github.com/jcmexdev/pizza-sales/internal/reporting"
	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
)

const ingredientSeparator = ", "

// Store is the SQLite implementation of reporting.Reporter.
type Store struct {
	db *sql.DB
}

var _ reporting.Reporter = (*Store)(nil)

// Open opens (or creates) the database at path and applies the schema.
//
//	store, err := sqlite.Open("./data/pizza.db")
func Open(path string) (*Store, error) {
	db, err := sqlitedb.Open(path)
	if err != nil {
		return nil, err
	}
	store, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New applies the schema on an already open handle.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the handle so other repositories can share the connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load replaces the contents of the four sales tables with ds in one
// transaction. Constraint violations abort the load and leave the previous
// contents in place.
func (s *Store) Load(ctx context.Context, ds *domain.Dataset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin load: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"order_details", "orders", "pizzas", "pizza_types"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: clear %s: %w", table, err)
		}
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO pizza_types (pizza_type_id, name, category, ingredients) VALUES (?, ?, ?, ?)`,
		ds.PizzaTypes, func(pt domain.PizzaType) []any {
			return []any{pt.ID, pt.Name, string(pt.Category), strings.Join(pt.Ingredients, ingredientSeparator)}
		}); err != nil {
		return fmt.Errorf("sqlite: load pizza types: %w", err)
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO pizzas (pizza_id, pizza_type_id, size, price) VALUES (?, ?, ?, ?)`,
		ds.Pizzas, func(p domain.Pizza) []any {
			return []any{p.ID, p.PizzaTypeID, p.Size, p.Price.InexactFloat64()}
		}); err != nil {
		return fmt.Errorf("sqlite: load pizzas: %w", err)
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO orders (order_id, order_date, order_time) VALUES (?, ?, ?)`,
		ds.Orders, func(o domain.Order) []any {
			return []any{o.ID, o.Date.Format(time.DateOnly), o.Time.Format(time.TimeOnly)}
		}); err != nil {
		return fmt.Errorf("sqlite: load orders: %w", err)
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO order_details (order_details_id, order_id, pizza_id, quantity) VALUES (?, ?, ?, ?)`,
		ds.LineItems, func(li domain.OrderLineItem) []any {
			return []any{li.ID, li.OrderID, li.PizzaID, li.Quantity}
		}); err != nil {
		return fmt.Errorf("sqlite: load order details: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit load: %w", err)
	}
	return nil
}

func insertAll[T any](ctx context.Context, tx *sql.Tx, query string, rows []T, args func(T) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, args(row)...); err != nil {
			return err
		}
	}
	return nil
}

// Dataset reads the four sales tables back into memory.
func (s *Store) Dataset(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	err := scanAll(ctx, s.db,
		`SELECT pizza_type_id, name, category, ingredients FROM pizza_types ORDER BY pizza_type_id`,
		func(rows *sql.Rows) error {
			var pt domain.PizzaType
			var ingredients string
			if err := rows.Scan(&pt.ID, &pt.Name, &pt.Category, &ingredients); err != nil {
				return err
			}
			pt.Ingredients = splitIngredients(ingredients)
			ds.PizzaTypes = append(ds.PizzaTypes, pt)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("sqlite: read pizza types: %w", err)
	}

	err = scanAll(ctx, s.db,
		`SELECT pizza_id, pizza_type_id, size, price FROM pizzas ORDER BY pizza_id`,
		func(rows *sql.Rows) error {
			var p domain.Pizza
			var price float64
			if err := rows.Scan(&p.ID, &p.PizzaTypeID, &p.Size, &price); err != nil {
				return err
			}
			p.Price = decimal.NewFromFloat(price)
			ds.Pizzas = append(ds.Pizzas, p)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("sqlite: read pizzas: %w", err)
	}

	err = scanAll(ctx, s.db,
		`SELECT order_id, order_date, order_time FROM orders ORDER BY order_id`,
		func(rows *sql.Rows) error {
			var o domain.Order
			var date, clock string
			if err := rows.Scan(&o.ID, &date, &clock); err != nil {
				return err
			}
			var err error
			if o.Date, err = time.Parse(time.DateOnly, date); err != nil {
				return fmt.Errorf("order %d: %w", o.ID, err)
			}
			if o.Time, err = time.Parse(time.TimeOnly, clock); err != nil {
				return fmt.Errorf("order %d: %w", o.ID, err)
			}
			ds.Orders = append(ds.Orders, o)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("sqlite: read orders: %w", err)
	}

	err = scanAll(ctx, s.db,
		`SELECT order_details_id, order_id, pizza_id, quantity FROM order_details ORDER BY order_details_id`,
		func(rows *sql.Rows) error {
			var li domain.OrderLineItem
			if err := rows.Scan(&li.ID, &li.OrderID, &li.PizzaID, &li.Quantity); err != nil {
				return err
			}
			ds.LineItems = append(ds.LineItems, li)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("sqlite: read order details: %w", err)
	}

	return ds, nil
}

// Stats returns the same summary reporting.StatsOf computes in memory.
func (s *Store) Stats(ctx context.Context) (reporting.Stats, error) {
	const q = `
		SELECT (SELECT COUNT(*) FROM orders),
		       (SELECT COUNT(*) FROM order_details),
		       (SELECT COALESCE(SUM(quantity), 0) FROM order_details),
		       (SELECT COUNT(*) FROM pizzas),
		       (SELECT COUNT(*) FROM pizza_types),
		       (SELECT COALESCE(MAX(order_id), 0) FROM orders)`

	var st reporting.Stats
	err := s.db.QueryRowContext(ctx, q).Scan(
		&st.Orders, &st.LineItems, &st.Quantity, &st.Pizzas, &st.PizzaTypes, &st.MaxOrderID,
	)
	if err != nil {
		return reporting.Stats{}, fmt.Errorf("sqlite: stats: %w", err)
	}
	return st, nil
}

func scanAll(ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) error, args ...any) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func splitIngredients(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
