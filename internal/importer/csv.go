// Package importer reads the public pizza sales dataset, published as four
// CSV files, into a domain.Dataset.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pizza-sales/internal/sales/domain"
)

// File names inside a dataset directory.
const (
	OrdersFile       = "orders.csv"
	OrderDetailsFile = "order_details.csv"
	PizzasFile       = "pizzas.csv"
	PizzaTypesFile   = "pizza_types.csv"
)

// Date layouts seen in published copies of the dataset.
var dateLayouts = []string{time.DateOnly, "1/2/2006", "02-01-2006"}

// LoadDir reads the four files from dir and validates the result.
func LoadDir(dir string) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	steps := []struct {
		file string
		read func(io.Reader) error
	}{
		{PizzaTypesFile, func(r io.Reader) (err error) { ds.PizzaTypes, err = ReadPizzaTypes(r); return }},
		{PizzasFile, func(r io.Reader) (err error) { ds.Pizzas, err = ReadPizzas(r); return }},
		{OrdersFile, func(r io.Reader) (err error) { ds.Orders, err = ReadOrders(r); return }},
		{OrderDetailsFile, func(r io.Reader) (err error) { ds.LineItems, err = ReadOrderDetails(r); return }},
	}

	for _, s := range steps {
		if err := readFile(filepath.Join(dir, s.file), s.read); err != nil {
			return nil, err
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	return ds, nil
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("importer: %w", err)
	}
	defer f.Close()

	if err := read(f); err != nil {
		return fmt.Errorf("importer: %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadOrders parses order_id,date,time.
func ReadOrders(r io.Reader) ([]domain.Order, error) {
	return readRecords(r, 3, func(rec []string) (domain.Order, error) {
		var o domain.Order
		var err error
		if o.ID, err = strconv.Atoi(rec[0]); err != nil {
			return o, fmt.Errorf("order_id: %w", err)
		}
		if o.Date, err = parseDate(rec[1]); err != nil {
			return o, err
		}
		if o.Time, err = time.Parse(time.TimeOnly, rec[2]); err != nil {
			return o, fmt.Errorf("time: %w", err)
		}
		return o, nil
	})
}

// ReadOrderDetails parses order_details_id,order_id,pizza_id,quantity.
func ReadOrderDetails(r io.Reader) ([]domain.OrderLineItem, error) {
	return readRecords(r, 4, func(rec []string) (domain.OrderLineItem, error) {
		var li domain.OrderLineItem
		var err error
		if li.ID, err = strconv.Atoi(rec[0]); err != nil {
			return li, fmt.Errorf("order_details_id: %w", err)
		}
		if li.OrderID, err = strconv.Atoi(rec[1]); err != nil {
			return li, fmt.Errorf("order_id: %w", err)
		}
		li.PizzaID = rec[2]
		if li.Quantity, err = strconv.Atoi(rec[3]); err != nil {
			return li, fmt.Errorf("quantity: %w", err)
		}
		return li, nil
	})
}

// ReadPizzas parses pizza_id,pizza_type_id,size,price.
func ReadPizzas(r io.Reader) ([]domain.Pizza, error) {
	return readRecords(r, 4, func(rec []string) (domain.Pizza, error) {
		price, err := decimal.NewFromString(rec[3])
		if err != nil {
			return domain.Pizza{}, fmt.Errorf("price: %w", err)
		}
		return domain.Pizza{ID: rec[0], PizzaTypeID: rec[1], Size: rec[2], Price: price}, nil
	})
}

// ReadPizzaTypes parses pizza_type_id,name,category,ingredients where
// ingredients is a quoted, comma separated list.
func ReadPizzaTypes(r io.Reader) ([]domain.PizzaType, error) {
	return readRecords(r, 4, func(rec []string) (domain.PizzaType, error) {
		pt := domain.PizzaType{ID: rec[0], Name: rec[1], Category: domain.Category(rec[2])}
		for _, ing := range strings.Split(rec[3], ",") {
			if ing = strings.TrimSpace(ing); ing != "" {
				pt.Ingredients = append(pt.Ingredients, ing)
			}
		}
		return pt, nil
	})
}

// readRecords skips the header row and maps every following record.
// Line numbers in errors are 1-based and count the header.
func readRecords[T any](r io.Reader, fields int, parse func([]string) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}

	var out []T
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		v, err := parse(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, v)
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date: unrecognised %q", s)
}
