//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package kimball

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-edw/internal/datedim"
	"github.com/pgEdge/pgedge-edw/internal/extract"
	"github.com/pgEdge/pgedge-edw/internal/logging"
)

// maxLoggedDetails bounds how many anomalies of each kind are logged.
const maxLoggedDetails = 3

// Fact is one FactSales row.
type Fact struct {
	DateKey     int64
	CustomerKey sql.NullInt64
	ProductKey  sql.NullInt64
	OrderID     string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Cost        decimal.Decimal
	Profit      decimal.Decimal
}

// Values returns the row in FactSales insert column order.
func (f Fact) Values() []any {
	return []any{
		f.DateKey,
		nullable(f.CustomerKey),
		nullable(f.ProductKey),
		f.OrderID,
		f.Quantity,
		f.UnitPrice.InexactFloat64(),
		f.Total.InexactFloat64(),
		f.Cost.InexactFloat64(),
		f.Profit.InexactFloat64(),
	}
}

func nullable(v sql.NullInt64) any {
	if !v.Valid {
		return nil
	}
	return v.Int64
}

// ReferentialAnomaly is a line item dropped because the order or product
// it references is missing from the extracts.
type ReferentialAnomaly struct {
	OrderItemID string
	Entity      extract.Entity
	Key         string
}

// OrphanFactWarning is a fact emitted with a NULL dimension key because
// the natural key was not found in the persisted dimension.
type OrphanFactWarning struct {
	OrderItemID string
	Dimension   string
	Key         string
}

// Report accumulates the data-quality findings of one fact build.
type Report struct {
	Anomalies []ReferentialAnomaly
	Orphans   []OrphanFactWarning
}

// Metadata keys of the report counters.
const (
	KeyReferentialAnomalies = "referential_anomalies"
	KeyOrphanFacts          = "orphan_facts"
	KeyItemsMissingOrder    = "items_missing_order"
	KeyItemsMissingProduct  = "items_missing_product"
	KeyOrphanCustomerKeys   = "orphan_customer_keys"
	KeyOrphanProductKeys    = "orphan_product_keys"
)

// Counts returns the report as named counters.
func (r *Report) Counts() map[string]int64 {
	counts := map[string]int64{
		KeyReferentialAnomalies: int64(len(r.Anomalies)),
		KeyOrphanFacts:          0,
		KeyItemsMissingOrder:    0,
		KeyItemsMissingProduct:  0,
		KeyOrphanCustomerKeys:   0,
		KeyOrphanProductKeys:    0,
	}
	for _, a := range r.Anomalies {
		switch a.Entity {
		case extract.Orders:
			counts[KeyItemsMissingOrder]++
		case extract.Products:
			counts[KeyItemsMissingProduct]++
		}
	}

	seen := make(map[string]bool)
	for _, o := range r.Orphans {
		switch o.Dimension {
		case DimCustomerTable:
			counts[KeyOrphanCustomerKeys]++
		case DimProductTable:
			counts[KeyOrphanProductKeys]++
		}
		seen[o.OrderItemID] = true
	}
	counts[KeyOrphanFacts] = int64(len(seen))
	return counts
}

// Log writes a warning summary with the first few details of each kind.
func (r *Report) Log() {
	for i, a := range r.Anomalies {
		if i == maxLoggedDetails {
			break
		}
		logging.Warn().
			Str("order_item_id", a.OrderItemID).
			Str("missing", string(a.Entity)).
			Str("key", a.Key).
			Msg("Line item dropped")
	}
	for i, o := range r.Orphans {
		if i == maxLoggedDetails {
			break
		}
		logging.Warn().
			Str("order_item_id", o.OrderItemID).
			Str("dimension", o.Dimension).
			Str("key", o.Key).
			Msg("Orphan fact")
	}

	if len(r.Anomalies) > 0 || len(r.Orphans) > 0 {
		counts := r.Counts()
		logging.Warn().
			Int64("referential_anomalies", counts[KeyReferentialAnomalies]).
			Int64("orphan_facts", counts[KeyOrphanFacts]).
			Msg("Fact build data-quality summary")
	}
}

// index maps natural keys to rows. Join keys must be unique.
func index[T any](entity extract.Entity, rows []T, key func(T) string) (map[string]T, error) {
	m := make(map[string]T, len(rows))
	for _, r := range rows {
		k := key(r)
		if _, ok := m[k]; ok {
			return nil, &DuplicateNaturalKeyError{Dimension: string(entity), Key: k}
		}
		m[k] = r
	}
	return m, nil
}

// FactBuilder joins line items to their order and product. The join
// indexes are built up front so that duplicate order or product IDs are
// rejected before anything is written.
type FactBuilder struct {
	items    []extract.OrderItem
	orders   map[string]extract.Order
	products map[string]extract.Product
}

// NewFactBuilder indexes the orders and products of set by natural key.
func NewFactBuilder(set *extract.Set) (*FactBuilder, error) {
	orders, err := index(extract.Orders, set.Orders, func(o extract.Order) string { return o.OrderID })
	if err != nil {
		return nil, err
	}
	products, err := index(extract.Products, set.Products, func(p extract.Product) string { return p.ProductID })
	if err != nil {
		return nil, err
	}
	return &FactBuilder{items: set.Items, orders: orders, products: products}, nil
}

// BuildFacts is NewFactBuilder followed by Build.
func BuildFacts(set *extract.Set, customers, products KeyLookup) ([]Fact, *Report, error) {
	b, err := NewFactBuilder(set)
	if err != nil {
		return nil, nil, err
	}
	facts, report := b.Build(customers, products)
	return facts, report, nil
}

// Build joins line items to their order (inner), then to their product
// (inner), then resolves dimension keys (left). Dropped items are
// reported as anomalies; lookup misses keep a NULL key and are reported as
// orphans. Facts are returned in line item order.
func (b *FactBuilder) Build(customers, products KeyLookup) ([]Fact, *Report) {
	report := &Report{}
	facts := make([]Fact, 0, len(b.items))

	for _, item := range b.items {
		order, ok := b.orders[item.OrderID]
		if !ok {
			report.Anomalies = append(report.Anomalies,
				ReferentialAnomaly{OrderItemID: item.OrderItemID, Entity: extract.Orders, Key: item.OrderID})
			continue
		}
		product, ok := b.products[item.ProductID]
		if !ok {
			report.Anomalies = append(report.Anomalies,
				ReferentialAnomaly{OrderItemID: item.OrderItemID, Entity: extract.Products, Key: item.ProductID})
			continue
		}

		f := Fact{
			DateKey:   datedim.Key(order.OrderDate),
			OrderID:   order.OrderID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}

		if k, ok := customers.Lookup(order.CustomerID); ok {
			f.CustomerKey = sql.NullInt64{Int64: k, Valid: true}
		} else {
			report.Orphans = append(report.Orphans,
				OrphanFactWarning{OrderItemID: item.OrderItemID, Dimension: DimCustomerTable, Key: order.CustomerID})
		}
		if k, ok := products.Lookup(item.ProductID); ok {
			f.ProductKey = sql.NullInt64{Int64: k, Valid: true}
		} else {
			report.Orphans = append(report.Orphans,
				OrphanFactWarning{OrderItemID: item.OrderItemID, Dimension: DimProductTable, Key: item.ProductID})
		}

		// Total and cost are both derived from quantity; profit is their
		// difference.
		qty := decimal.NewFromInt(item.Quantity)
		f.Total = qty.Mul(item.UnitPrice)
		f.Cost = qty.Mul(product.Cost)
		f.Profit = f.Total.Sub(f.Cost)

		facts = append(facts, f)
	}

	return facts, report
}
