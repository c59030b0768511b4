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
	"github.com/pgEdge/pgedge-edw/internal/warehouse"
)

// Table names.
const (
	DimDateTable     = "DimDate"
	DimCustomerTable = "DimCustomer"
	DimProductTable  = "DimProduct"
	FactSalesTable   = "FactSales"
)

// DimDate is the conformed calendar dimension.
var DimDate = warehouse.Table{
	Name: DimDateTable,
	Columns: []warehouse.Column{
		{Name: "Date_Key", Type: warehouse.Integer, PrimaryKey: true},
		{Name: "Full_Date", Type: warehouse.Date, NotNull: true},
		{Name: "Day_Name", Type: warehouse.Text, NotNull: true},
		{Name: "Month_Name", Type: warehouse.Text, NotNull: true},
		{Name: "Year", Type: warehouse.Integer, NotNull: true},
		{Name: "Quarter", Type: warehouse.Integer, NotNull: true},
	},
}

// DimCustomer is a type-1 customer dimension. Customer_Key values are
// assigned by the resolver, not by the storage engine.
var DimCustomer = warehouse.Table{
	Name: DimCustomerTable,
	Columns: []warehouse.Column{
		{Name: "Customer_Key", Type: warehouse.Integer, PrimaryKey: true},
		{Name: "Customer_ID", Type: warehouse.Text, NotNull: true, Unique: true},
		{Name: "Full_Name", Type: warehouse.Text},
		{Name: "Email", Type: warehouse.Text},
		{Name: "Location", Type: warehouse.Text},
	},
}

// DimProduct is a type-1 product dimension carrying the current price.
var DimProduct = warehouse.Table{
	Name: DimProductTable,
	Columns: []warehouse.Column{
		{Name: "Product_Key", Type: warehouse.Integer, PrimaryKey: true},
		{Name: "Product_ID", Type: warehouse.Text, NotNull: true, Unique: true},
		{Name: "Product_Name", Type: warehouse.Text},
		{Name: "Category", Type: warehouse.Text},
		{Name: "Current_Price", Type: warehouse.Real},
	},
}

// FactSales holds one row per order line item. Customer_Key and
// Product_Key reference their dimensions and are NULL for orphan facts.
// Date_Key has no constraint so that an order date outside DimDate keeps
// its computed key.
var FactSales = warehouse.Table{
	Name: FactSalesTable,
	Columns: []warehouse.Column{
		{Name: "Sales_Key", Type: warehouse.Integer, AutoIncrement: true},
		{Name: "Date_Key", Type: warehouse.Integer, NotNull: true},
		{Name: "Customer_Key", Type: warehouse.Integer},
		{Name: "Product_Key", Type: warehouse.Integer},
		{Name: "Order_ID", Type: warehouse.Text, NotNull: true},
		{Name: "Quantity", Type: warehouse.Integer, NotNull: true},
		{Name: "Unit_Price", Type: warehouse.Real, NotNull: true},
		{Name: "Total_Amount", Type: warehouse.Real, NotNull: true},
		{Name: "Cost_Amount", Type: warehouse.Real, NotNull: true},
		{Name: "Profit_Amount", Type: warehouse.Real, NotNull: true},
	},
	ForeignKeys: []warehouse.ForeignKey{
		{Column: "Customer_Key", RefTable: DimCustomerTable, RefColumn: "Customer_Key"},
		{Column: "Product_Key", RefTable: DimProductTable, RefColumn: "Product_Key"},
	},
}

// Tables returns the star schema in creation order.
func Tables() []warehouse.Table {
	return []warehouse.Table{DimDate, DimCustomer, DimProduct, FactSales}
}
