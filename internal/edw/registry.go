//-------------------------------------------------------------------------
//
// pgEdge Warehouse Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package edw

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Model)
	mu       sync.RWMutex
)

// Register adds a model to the registry.
func Register(m Model) {
	mu.Lock()
	defer mu.Unlock()
	registry[m.Name()] = m
}

// Get retrieves a model by name.
func Get(name string) (Model, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown warehouse model: %s", name)
	}
	return m, nil
}

// List returns all registered model names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
