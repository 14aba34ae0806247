// Package filter derives the displayed subset of a collection from independent predicates.
// Everything here is pure: the result depends only on (collection, predicates).
package filter

import (
	"strings"
)

// Predicate reports whether an item satisfies one filter criterion.
// A nil Predicate means "no constraint".
type Predicate[T any] func(T) bool

// Apply returns a new slice with the items of `items` matching every non-nil predicate (logical AND).
// The input slice is never modified and the relative order of items is kept.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range active {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// Contains is a case-insensitive substring match of `needle` against field(item).
// A blank needle yields no constraint.
func Contains[T any](needle string, field func(T) string) Predicate[T] {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return nil
	}
	return func(item T) bool {
		return strings.Contains(strings.ToLower(field(item)), needle)
	}
}

// Equals is an exact identity match of `id` against field(item).
// field reports ok=false when the item has no such reference, which never matches.
// A nil id yields no constraint.
func Equals[T any](id *int, field func(T) (int, bool)) Predicate[T] {
	if id == nil {
		return nil
	}
	want := *id
	return func(item T) bool {
		got, ok := field(item)
		return ok && got == want
	}
}

// Includes matches items whose field(item) list contains `value` exactly.
// An empty value yields no constraint.
func Includes[T any](value string, field func(T) []string) Predicate[T] {
	if value == "" {
		return nil
	}
	return func(item T) bool {
		for _, v := range field(item) {
			if v == value {
				return true
			}
		}
		return false
	}
}

// IntPtr returns a pointer to i; handy for building filters.
func IntPtr(i int) *int { return &i }
