//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
	if f1.UUID() != f2.UUID() {
		t.Error("Same seed produced different UUIDs")
	}
}

func TestFakerStrings(t *testing.T) {
	f := NewFakerWithSeed(1)
	for name, fn := range map[string]func() string{
		"FirstName":   f.FirstName,
		"LastName":    f.LastName,
		"Email":       f.Email,
		"Street":      f.Street,
		"City":        f.City,
		"State":       f.State,
		"Zip":         f.Zip,
		"ProductName": f.ProductName,
		"UUID":        f.UUID,
	} {
		if fn() == "" {
			t.Errorf("%s returned empty string", name)
		}
	}
}

func TestFakerMoney(t *testing.T) {
	f := NewFakerWithSeed(7)
	lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(500)
	for i := 0; i < 100; i++ {
		m := f.Money(10, 500)
		if m.LessThan(lo) || m.GreaterThan(hi) {
			t.Fatalf("Money out of range: %s", m)
		}
		if m.Exponent() < -2 {
			t.Fatalf("Money has more than two decimals: %s", m)
		}
	}
}

func TestFakerDateRange(t *testing.T) {
	f := NewFakerWithSeed(3)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	for i := 0; i < 100; i++ {
		d := f.DateRange(start, end)
		if d.Before(start) || d.After(end) {
			t.Fatalf("DateRange out of range: %v", d)
		}
		if d.Nanosecond() != 0 {
			t.Fatalf("DateRange should be truncated to seconds: %v", d)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(5)
	items := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		v := Choose(f, items)
		if v != "a" && v != "b" && v != "c" {
			t.Fatalf("Choose returned %q", v)
		}
	}
	if v := Choose(f, []string{}); v != "" {
		t.Errorf("Choose on empty slice returned %q", v)
	}
}

func TestSample(t *testing.T) {
	f := NewFakerWithSeed(9)
	items := []int{1, 2, 3, 4, 5, 6, 7}

	for n := 0; n <= len(items)+2; n++ {
		got := Sample(f, items, n)
		want := min(n, len(items))
		if len(got) != want {
			t.Fatalf("Sample(%d) returned %d items", n, len(got))
		}
		seen := make(map[int]bool)
		for _, v := range got {
			if seen[v] {
				t.Fatalf("Sample(%d) returned duplicate %d", n, v)
			}
			seen[v] = true
		}
	}

	if items[0] != 1 || items[6] != 7 {
		t.Error("Sample must not reorder its input")
	}
}
