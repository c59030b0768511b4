//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datedim generates calendar date dimension rows.
package datedim

import (
	"time"
)

// Row is one calendar day.
type Row struct {
	DateKey   int64
	FullDate  time.Time
	DayName   string
	MonthName string
	Year      int64
	Quarter   int64
}

// Values returns the row as Date_Key, Full_Date, Day_Name, Month_Name,
// Year, Quarter.
func (r Row) Values() []any {
	return []any{r.DateKey, r.FullDate, r.DayName, r.MonthName, r.Year, r.Quarter}
}

// Key encodes the calendar date of t as year*10000 + month*100 + day.
// The time-of-day and location offset are ignored.
func Key(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewRow builds the dimension row for the calendar date of t.
func NewRow(t time.Time) Row {
	day := Day(t)
	return Row{
		DateKey:   Key(day),
		FullDate:  day,
		DayName:   day.Weekday().String(),
		MonthName: day.Month().String(),
		Year:      int64(day.Year()),
		Quarter:   int64(day.Month()-1)/3 + 1,
	}
}

// Generate returns one row per calendar day from the date of first through
// the date of last, inclusive. It returns nil when last is before first.
func Generate(first, last time.Time) []Row {
	start, end := Day(first), Day(last)
	if end.Before(start) {
		return nil
	}

	rows := make([]Row, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rows = append(rows, NewRow(d))
	}
	return rows
}
