//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package extract reads the four transactional source extracts (customers,
// products, orders, order line items) into typed, natural-keyed records.
package extract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-edw/internal/datedim"
)

// Entity names a source extract. The value is also the file stem.
type Entity string

// Source extracts.
const (
	Customers  Entity = "customers"
	Products   Entity = "products"
	Orders     Entity = "orders"
	OrderItems Entity = "order_items"
)

// Entities lists the extracts in dependency order.
var Entities = []Entity{Customers, Products, Orders, OrderItems}

// FileName returns the file name of the extract inside an input directory.
func (e Entity) FileName() string {
	return string(e) + ".csv"
}

// Columns is the fixed column contract of each extract, in file order.
var Columns = map[Entity][]string{
	Customers:  {"customer_id", "first_name", "last_name", "email", "address", "city", "state", "zip_code", "created_at"},
	Products:   {"product_id", "product_name", "category", "price", "cost"},
	Orders:     {"order_id", "customer_id", "order_date", "status"},
	OrderItems: {"order_item_id", "order_id", "product_id", "quantity", "unit_price"},
}

// Status is an order status.
type Status string

// Order statuses produced by the source system.
const (
	StatusCompleted  Status = "Completed"
	StatusShipped    Status = "Shipped"
	StatusProcessing Status = "Processing"
	StatusCancelled  Status = "Cancelled"
)

// Statuses lists every known order status.
var Statuses = []Status{StatusCompleted, StatusShipped, StatusProcessing, StatusCancelled}

// Customer is a row of the customers extract.
type Customer struct {
	CustomerID string
	FirstName  string
	LastName   string
	Email      string
	Address    string
	City       string
	State      string
	ZipCode    string
	CreatedAt  time.Time
}

// Values returns the row in Columns[Customers] order.
func (c Customer) Values() []any {
	return []any{c.CustomerID, c.FirstName, c.LastName, c.Email, c.Address,
		c.City, c.State, c.ZipCode, c.CreatedAt}
}

// Product is a row of the products extract. Cost may exceed Price.
type Product struct {
	ProductID   string
	ProductName string
	Category    string
	Price       decimal.Decimal
	Cost        decimal.Decimal
}

// Values returns the row in Columns[Products] order.
func (p Product) Values() []any {
	return []any{p.ProductID, p.ProductName, p.Category,
		p.Price.InexactFloat64(), p.Cost.InexactFloat64()}
}

// Order is a row of the orders extract.
type Order struct {
	OrderID    string
	CustomerID string
	OrderDate  time.Time
	Status     Status
}

// Values returns the row in Columns[Orders] order.
func (o Order) Values() []any {
	return []any{o.OrderID, o.CustomerID, o.OrderDate, string(o.Status)}
}

// OrderItem is a row of the order_items extract. UnitPrice is the price
// captured at purchase time and is not derived from Product.
type OrderItem struct {
	OrderItemID string
	OrderID     string
	ProductID   string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Values returns the row in Columns[OrderItems] order.
func (i OrderItem) Values() []any {
	return []any{i.OrderItemID, i.OrderID, i.ProductID, i.Quantity, i.UnitPrice.InexactFloat64()}
}

// FileInfo describes one extract file as it was read.
type FileInfo struct {
	Path     string
	Rows     int
	Checksum uint64 // xxh3 of the raw file bytes
}

// Set holds the four extracts of one input directory.
type Set struct {
	Customers []Customer
	Products  []Product
	Orders    []Order
	Items     []OrderItem

	Files map[Entity]FileInfo
}

// RowCount returns the number of rows read for an entity.
func (s *Set) RowCount(e Entity) int {
	switch e {
	case Customers:
		return len(s.Customers)
	case Products:
		return len(s.Products)
	case Orders:
		return len(s.Orders)
	case OrderItems:
		return len(s.Items)
	}
	return 0
}

// OrderDateRange returns the first and last calendar dates on which orders
// were placed, each as midnight UTC. Dates are taken from each timestamp's
// own wall clock, so orders with different offsets are compared by the
// date they carry rather than by instant. ok is false when there are no
// orders.
func (s *Set) OrderDateRange() (minDate, maxDate time.Time, ok bool) {
	if len(s.Orders) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate = datedim.Day(s.Orders[0].OrderDate)
	maxDate = minDate
	for _, o := range s.Orders[1:] {
		day := datedim.Day(o.OrderDate)
		if day.Before(minDate) {
			minDate = day
		}
		if day.After(maxDate) {
			maxDate = day
		}
	}
	return minDate, maxDate, true
}
