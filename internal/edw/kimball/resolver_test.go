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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-edw/internal/extract"
)

func TestResolverAssignsDenseKeys(t *testing.T) {
	r := NewResolver(DimCustomerTable)

	for i, natural := range []string{"C9", "C1", "C5"} {
		k, err := r.Assign(natural)
		require.NoError(t, err)
		assert.EqualValues(t, i+1, k)
	}
	assert.Equal(t, 3, r.Len())

	k, ok := r.Lookup("C1")
	assert.True(t, ok)
	assert.EqualValues(t, 2, k)

	_, ok = r.Lookup("C2")
	assert.False(t, ok)
}

func TestResolverRejectsDuplicates(t *testing.T) {
	r := NewResolver(DimProductTable)
	_, err := r.Assign("P1")
	require.NoError(t, err)

	_, err = r.Assign("P1")
	var dup *DuplicateNaturalKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, DimProductTable, dup.Dimension)
	assert.Equal(t, "P1", dup.Key)
	assert.Equal(t, 1, r.Len())
}

func TestResolverIsDeterministicForFixedOrder(t *testing.T) {
	keys := []string{"a", "b", "c", "d"}
	assign := func() map[string]int64 {
		r := NewResolver(DimCustomerTable)
		out := make(map[string]int64)
		for _, k := range keys {
			v, err := r.Assign(k)
			require.NoError(t, err)
			out[k] = v
		}
		return out
	}
	assert.Equal(t, assign(), assign())
}

func TestCustomerRows(t *testing.T) {
	rows, err := CustomerRows([]extract.Customer{
		{CustomerID: "C1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", City: "London", State: "LN"},
		{CustomerID: "C2", FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", City: "Wilmslow", State: "CH"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []any{int64(1), "C1", "Ada Lovelace", "ada@example.com", "London, LN"}, rows[0])
	assert.Equal(t, int64(2), rows[1][0])
	assert.Len(t, rows[0], len(DimCustomer.InsertColumns()))
}

func TestCustomerRowsDuplicate(t *testing.T) {
	_, err := CustomerRows([]extract.Customer{{CustomerID: "C1"}, {CustomerID: "C1"}})
	var dup *DuplicateNaturalKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, DimCustomerTable, dup.Dimension)
}

func TestProductRows(t *testing.T) {
	rows, err := ProductRows([]extract.Product{
		{ProductID: "P1", ProductName: "Widget", Category: "Toys",
			Price: decimal.RequireFromString("19.99"), Cost: decimal.RequireFromString("7.50")},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, []any{int64(1), "P1", "Widget", "Toys", 19.99}, rows[0])
	assert.Len(t, rows[0], len(DimProduct.InsertColumns()))
}
