// Package view holds the page-level state of the console: fetch-on-demand
// lists, reload-after-mutation, and the pure derived-state computations over
// them. Nothing here talks to the network except through the api client.
package view

import (
	"sort"
	"strings"

	"shopadmin/internal/domain"
)

// StockFilter buckets products by stock_quantity thresholds.
type StockFilter string

const (
	StockAll  StockFilter = "all"
	StockIn   StockFilter = "in_stock"  // > 10
	StockLow  StockFilter = "low_stock" // 1..10
	StockOut  StockFilter = "out_of_stock"
	lowBound              = 10
)

// ValidStockFilter reports whether f is a known bucket selector.
func ValidStockFilter(f StockFilter) bool {
	switch f {
	case StockAll, StockIn, StockLow, StockOut:
		return true
	}
	return false
}

// StockBucket returns the bucket a quantity falls into. The three buckets
// partition every possible quantity.
func StockBucket(qty int64) StockFilter {
	switch {
	case qty == 0:
		return StockOut
	case qty <= lowBound:
		return StockLow
	default:
		return StockIn
	}
}

// SortKey selects the column products are ordered by.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByStock SortKey = "stock_quantity"
)

// ValidSortKey reports whether k is a sortable column.
func ValidSortKey(k SortKey) bool {
	return k == SortByName || k == SortByPrice || k == SortByStock
}

// Sort is a key/direction pair.
type Sort struct {
	Key SortKey
	Asc bool
}

// Toggle returns the sort that results from clicking key: the active key
// flips direction, a new key resets to ascending.
func (s Sort) Toggle(key SortKey) Sort {
	if s.Key == key {
		return Sort{Key: key, Asc: !s.Asc}
	}
	return Sort{Key: key, Asc: true}
}

// Visible computes the ordered visible subset of products for the given
// query, stock filter and sort. It is pure: no fetching, no mutation of the
// input slice.
func Visible(products []domain.Product, query string, filter StockFilter, s Sort) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range products {
		if filter != StockAll && filter != "" && StockBucket(p.StockQuantity) != filter {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, s)
	return out
}

// matchesQuery checks the lowered query against name, description and
// barcode; any one matching is sufficient, an absent field never matches.
func matchesQuery(p domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if p.Description != "" && strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	if p.Barcode != "" && strings.Contains(strings.ToLower(p.Barcode), q) {
		return true
	}
	return false
}

// sortProducts orders in place with a stable sort so ties keep their prior
// relative order.
func sortProducts(ps []domain.Product, s Sort) {
	if !ValidSortKey(s.Key) {
		return
	}
	sort.SliceStable(ps, func(i, j int) bool {
		var less bool
		switch s.Key {
		case SortByPrice:
			less = ps[i].Price < ps[j].Price
		case SortByStock:
			less = ps[i].StockQuantity < ps[j].StockQuantity
		default:
			less = strings.ToLower(ps[i].Name) < strings.ToLower(ps[j].Name)
		}
		if !s.Asc {
			return !less && !equalByKey(ps[i], ps[j], s.Key)
		}
		return less
	})
}

func equalByKey(a, b domain.Product, key SortKey) bool {
	switch key {
	case SortByPrice:
		return a.Price == b.Price
	case SortByStock:
		return a.StockQuantity == b.StockQuantity
	default:
		return strings.EqualFold(a.Name, b.Name)
	}
}
