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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TargetColumn maps a snake_case source column to the warehouse naming
// convention: each word title-cased, "id" upper-cased, underscores kept.
//
//	order_item_id -> Order_Item_ID
//	zip_code      -> Zip_Code
func TargetColumn(source string) string {
	caser := cases.Title(language.Und)
	parts := strings.Split(strings.ToLower(source), "_")
	for i, p := range parts {
		if p == "id" {
			parts[i] = "ID"
			continue
		}
		parts[i] = caser.String(p)
	}
	return strings.Join(parts, "_")
}

// TargetColumns maps the column contract of an entity with TargetColumn.
func TargetColumns(e Entity) []string {
	src := Columns[e]
	out := make([]string, len(src))
	for i, c := range src {
		out[i] = TargetColumn(c)
	}
	return out
}
