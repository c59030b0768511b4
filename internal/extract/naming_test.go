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
	"reflect"
	"testing"
)

func TestTargetColumn(t *testing.T) {
	tests := map[string]string{
		"customer_id":   "Customer_ID",
		"order_item_id": "Order_Item_ID",
		"zip_code":      "Zip_Code",
		"created_at":    "Created_At",
		"unit_price":    "Unit_Price",
		"status":        "Status",
	}
	for in, want := range tests {
		if got := TargetColumn(in); got != want {
			t.Errorf("TargetColumn(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTargetColumns(t *testing.T) {
	got := TargetColumns(Orders)
	want := []string{"Order_ID", "Customer_ID", "Order_Date", "Status"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TargetColumns(orders) = %v, want %v", got, want)
	}
}
