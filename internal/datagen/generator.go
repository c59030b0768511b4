//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen writes synthetic transactional extracts for exercising
// the warehouse pipelines.
package datagen

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"github.com/pgEdge/pgedge-edw/internal/config"
	"github.com/pgEdge/pgedge-edw/internal/extract"
	"github.com/pgEdge/pgedge-edw/internal/logging"
)

// Categories are the product categories of the synthetic catalog.
var Categories = []string{"Electronics", "Books", "Clothing", "Home", "Toys"}

// Value ranges of the synthetic data.
const (
	minPrice      = 10.0
	maxPrice      = 500.0
	minCost       = 5.0
	maxCost       = 250.0
	maxItems      = 5
	maxQuantity   = 3
	customerYears = 2
	orderYears    = 1
)

// Generator produces one consistent set of extracts.
type Generator struct {
	cfg   config.GenerateConfig
	faker *Faker
	now   time.Time
}

// NewGenerator creates a generator seeded from cfg. Dates are generated
// relative to now.
func NewGenerator(cfg config.GenerateConfig, now time.Time) *Generator {
	return &Generator{
		cfg:   cfg,
		faker: NewFakerWithSeed(cfg.Seed),
		now:   now.UTC().Truncate(time.Second),
	}
}

// FullAddress renders a single-line postal address, e.g.
// "12 Elm St, Springfield, IL 62701".
func FullAddress(street, city, state, zip string) string {
	return street + ", " + city + ", " + state + " " + zip
}

// Build generates the extracts in memory.
func (g *Generator) Build() *extract.Set {
	set := &extract.Set{}

	for i := 0; i < g.cfg.Customers; i++ {
		c := extract.Customer{
			CustomerID: g.faker.UUID(),
			FirstName:  g.faker.FirstName(),
			LastName:   g.faker.LastName(),
			Email:      g.faker.Email(),
		}
		street := g.faker.Street()
		c.City = g.faker.City()
		c.State = g.faker.State()
		c.ZipCode = g.faker.Zip()
		c.Address = FullAddress(street, c.City, c.State, c.ZipCode)
		c.CreatedAt = g.faker.DateRange(g.now.AddDate(-customerYears, 0, 0), g.now)
		set.Customers = append(set.Customers, c)
	}

	for i := 0; i < g.cfg.Products; i++ {
		set.Products = append(set.Products, extract.Product{
			ProductID:   g.faker.UUID(),
			ProductName: g.faker.ProductName(),
			Category:    Choose(g.faker, Categories),
			// Cost is independent of price and may exceed it.
			Price: g.faker.Money(minPrice, maxPrice),
			Cost:  g.faker.Money(minCost, maxCost),
		})
	}

	for i := 0; i < g.cfg.Orders; i++ {
		order := extract.Order{
			OrderID:    g.faker.UUID(),
			CustomerID: Choose(g.faker, set.Customers).CustomerID,
			OrderDate:  g.faker.DateRange(g.now.AddDate(-orderYears, 0, 0), g.now),
			Status:     Choose(g.faker, extract.Statuses),
		}
		set.Orders = append(set.Orders, order)

		for _, p := range Sample(g.faker, set.Products, g.faker.Int(1, maxItems)) {
			set.Items = append(set.Items, extract.OrderItem{
				OrderItemID: g.faker.UUID(),
				OrderID:     order.OrderID,
				ProductID:   p.ProductID,
				Quantity:    int64(g.faker.Int(1, maxQuantity)),
				UnitPrice:   p.Price,
			})
		}
	}

	return set
}

// Write generates the extracts and writes the four CSV files into the
// configured output directory.
func (g *Generator) Write(ctx context.Context) (*extract.Set, error) {
	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	set := g.Build()

	files := []struct {
		entity extract.Entity
		rows   [][]string
	}{
		{extract.Customers, records(set.Customers, customerRecord)},
		{extract.Products, records(set.Products, productRecord)},
		{extract.Orders, records(set.Orders, orderRecord)},
		{extract.OrderItems, records(set.Items, orderItemRecord)},
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(g.cfg.OutputDir, f.entity.FileName())
		if err := writeCSV(path, extract.Columns[f.entity], f.rows); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		logging.Info().
			Str("file", path).
			Int("rows", len(f.rows)).
			Msg("Extract written")
	}

	return set, nil
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func records[T any](src []T, format func(T) []string) [][]string {
	out := make([][]string, len(src))
	for i, r := range src {
		out[i] = format(r)
	}
	return out
}

func customerRecord(c extract.Customer) []string {
	return []string{c.CustomerID, c.FirstName, c.LastName, c.Email, c.Address,
		c.City, c.State, c.ZipCode, c.CreatedAt.Format(time.DateTime)}
}

func productRecord(p extract.Product) []string {
	return []string{p.ProductID, p.ProductName, p.Category,
		p.Price.StringFixed(2), p.Cost.StringFixed(2)}
}

func orderRecord(o extract.Order) []string {
	return []string{o.OrderID, o.CustomerID, o.OrderDate.Format(time.DateTime), string(o.Status)}
}

func orderItemRecord(i extract.OrderItem) []string {
	return []string{i.OrderItemID, i.OrderID, i.ProductID,
		strconv.FormatInt(i.Quantity, 10), i.UnitPrice.StringFixed(2)}
}
