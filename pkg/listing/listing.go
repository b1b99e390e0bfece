// Package listing filters and sorts in-memory rows by named columns.
// Clients and payments share it; each entity supplies its own column comparators.
package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Columns maps a column name to a comparator over rows.
type Columns[T any] map[string]func(a, b T) int

// ParseOrder accepts "", "asc" and "desc" (case-insensitive).
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Sort returns a sorted copy of rows. An empty column leaves the order untouched.
func Sort[T any](rows []T, columns Columns[T], column string, order Order) ([]T, error) {
	out := slices.Clone(rows)
	if column == "" {
		return out, nil
	}

	compare, ok := columns[strings.ToLower(column)]
	if !ok {
		return nil, fmt.Errorf("unknown sort column %q", column)
	}

	slices.SortStableFunc(out, func(a, b T) int {
		if order == Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out, nil
}

// Filter keeps the rows for which keep returns true.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// ContainsFold reports whether substr is within s, ignoring case. An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

// Compare is a convenience comparator for ordered column values.
func Compare[V cmp.Ordered](a, b V) int {
	return cmp.Compare(a, b)
}
