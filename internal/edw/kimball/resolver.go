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
	"fmt"

	"github.com/pgEdge/pgedge-edw/internal/extract"
)

// DuplicateNaturalKeyError is returned when a natural key is presented to
// a resolver or join index twice.
type DuplicateNaturalKeyError struct {
	Dimension string
	Key       string
}

func (e *DuplicateNaturalKeyError) Error() string {
	return fmt.Sprintf("duplicate natural key %q in %s", e.Key, e.Dimension)
}

// KeyLookup resolves a natural key to a surrogate key.
type KeyLookup interface {
	Lookup(natural string) (int64, bool)
}

// KeyMap is a lookup read back from a persisted dimension.
type KeyMap map[string]int64

// Lookup returns the surrogate key of natural.
func (m KeyMap) Lookup(natural string) (int64, bool) {
	k, ok := m[natural]
	return k, ok
}

// Resolver assigns dense surrogate keys, starting at 1, in the order
// natural keys are presented.
type Resolver struct {
	dimension string
	next      int64
	keys      map[string]int64
}

// NewResolver returns an empty resolver for dimension.
func NewResolver(dimension string) *Resolver {
	return &Resolver{
		dimension: dimension,
		next:      1,
		keys:      make(map[string]int64),
	}
}

// Assign gives natural the next surrogate key. A natural key seen before
// is rejected.
func (r *Resolver) Assign(natural string) (int64, error) {
	if _, ok := r.keys[natural]; ok {
		return 0, &DuplicateNaturalKeyError{Dimension: r.dimension, Key: natural}
	}
	k := r.next
	r.keys[natural] = k
	r.next++
	return k, nil
}

// Lookup returns the surrogate key assigned to natural.
func (r *Resolver) Lookup(natural string) (int64, bool) {
	k, ok := r.keys[natural]
	return k, ok
}

// Len returns the number of assigned keys.
func (r *Resolver) Len() int {
	return len(r.keys)
}

// CustomerRows builds DimCustomer rows in extract order.
func CustomerRows(customers []extract.Customer) ([][]any, error) {
	r := NewResolver(DimCustomerTable)
	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		key, err := r.Assign(c.CustomerID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []any{
			key,
			c.CustomerID,
			c.FirstName + " " + c.LastName,
			c.Email,
			c.City + ", " + c.State,
		})
	}
	return rows, nil
}

// ProductRows builds DimProduct rows in extract order.
func ProductRows(products []extract.Product) ([][]any, error) {
	r := NewResolver(DimProductTable)
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		key, err := r.Assign(p.ProductID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []any{
			key,
			p.ProductID,
			p.ProductName,
			p.Category,
			p.Price.InexactFloat64(),
		})
	}
	return rows, nil
}
