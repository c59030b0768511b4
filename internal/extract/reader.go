//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zeebo/xxh3"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/pgEdge/pgedge-edw/internal/logging"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// timestampLayouts are tried in order when parsing timestamp columns.
// Fractional seconds are accepted by every layout.
var timestampLayouts = []string{
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ReadDir reads the four extracts from dir. Files are read concurrently;
// the first failure cancels the others and is returned.
func ReadDir(ctx context.Context, dir string) (*Set, error) {
	set := &Set{Files: make(map[Entity]FileInfo, len(Entities))}
	infos := make([]FileInfo, len(Entities))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		set.Customers, infos[0], err = readFile(gctx, dir, Customers, parseCustomer)
		return err
	})
	g.Go(func() (err error) {
		set.Products, infos[1], err = readFile(gctx, dir, Products, parseProduct)
		return err
	})
	g.Go(func() (err error) {
		set.Orders, infos[2], err = readFile(gctx, dir, Orders, parseOrder)
		return err
	})
	g.Go(func() (err error) {
		set.Items, infos[3], err = readFile(gctx, dir, OrderItems, parseOrderItem)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, e := range Entities {
		set.Files[e] = infos[i]
		logging.Debug().
			Str("entity", string(e)).
			Int("rows", infos[i].Rows).
			Str("xxh3", fmt.Sprintf("%016x", infos[i].Checksum)).
			Msg("Extract read")
	}

	return set, nil
}

// record is one data row of an extract with typed accessors. Accessor
// failures are sticky: the first one is kept in err.
type record struct {
	entity Entity
	row    int
	index  map[string]int
	fields []string
	err    error
}

func (r *record) raw(col string) string {
	return strings.TrimSpace(r.fields[r.index[col]])
}

func (r *record) fail(col, value string, err error) {
	if r.err == nil {
		r.err = &ParseError{Entity: r.entity, Row: r.row, Column: col, Value: value, Err: err}
	}
}

func (r *record) text(col string) string {
	return r.raw(col)
}

func (r *record) integer(col string) int64 {
	v := r.raw(col)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(col, v, errors.New("not an integer"))
	}
	return n
}

func (r *record) real(col string) decimal.Decimal {
	v := r.raw(col)
	d, err := decimal.NewFromString(v)
	if err != nil {
		r.fail(col, v, errors.New("not a real number"))
	}
	return d
}

func (r *record) timestamp(col string) time.Time {
	v := r.raw(col)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	r.fail(col, v, errors.New("not a timestamp"))
	return time.Time{}
}

func parseCustomer(r *record) (Customer, error) {
	c := Customer{
		CustomerID: r.text("customer_id"),
		FirstName:  r.text("first_name"),
		LastName:   r.text("last_name"),
		Email:      r.text("email"),
		Address:    r.text("address"),
		City:       r.text("city"),
		State:      r.text("state"),
		ZipCode:    r.text("zip_code"),
		CreatedAt:  r.timestamp("created_at"),
	}
	return c, r.err
}

func parseProduct(r *record) (Product, error) {
	p := Product{
		ProductID:   r.text("product_id"),
		ProductName: r.text("product_name"),
		Category:    r.text("category"),
		Price:       r.real("price"),
		Cost:        r.real("cost"),
	}
	return p, r.err
}

func parseOrder(r *record) (Order, error) {
	o := Order{
		OrderID:    r.text("order_id"),
		CustomerID: r.text("customer_id"),
		OrderDate:  r.timestamp("order_date"),
		Status:     Status(r.text("status")),
	}
	return o, r.err
}

func parseOrderItem(r *record) (OrderItem, error) {
	i := OrderItem{
		OrderItemID: r.text("order_item_id"),
		OrderID:     r.text("order_id"),
		ProductID:   r.text("product_id"),
		Quantity:    r.integer("quantity"),
		UnitPrice:   r.real("unit_price"),
	}
	return i, r.err
}

// readFile opens dir/<entity>.csv, validates its header against the column
// contract and parses every data row.
func readFile[T any](
	ctx context.Context,
	dir string,
	entity Entity,
	parse func(*record) (T, error),
) (out []T, info FileInfo, err error) {
	path := filepath.Join(dir, entity.FileName())
	info.Path = path

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, info, &MissingExtractError{Entity: entity, Path: path}
		}
		return nil, info, fmt.Errorf("open %s extract: %w", entity, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	hasher := xxh3.New()
	cr := csv.NewReader(io.TeeReader(f, hasher))
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, info, &SchemaMismatchError{Entity: entity, Column: Columns[entity][0]}
		}
		return nil, info, fmt.Errorf("read %s header: %w", entity, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range Columns[entity] {
		if _, ok := index[col]; !ok {
			return nil, info, &SchemaMismatchError{Entity: entity, Column: col}
		}
	}

	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, info, err
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, info, fmt.Errorf("read %s row %d: %w", entity, row, err)
		}

		v, err := parse(&record{entity: entity, row: row, index: index, fields: fields})
		if err != nil {
			return nil, info, err
		}
		out = append(out, v)
	}

	info.Rows = len(out)
	info.Checksum = hasher.Sum64()
	return out, info, nil
}
