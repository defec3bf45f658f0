// Package collection holds small generic slice helpers used across the
// service layer.
package collection

import "sort"

// Map applies fn to every element and returns the results.
func Map[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, len(in))
	for i := range in {
		out[i] = fn(in[i])
	}
	return out
}

// Filter keeps the elements for which keep returns true.
func Filter[T any](in []T, keep func(T) bool) []T {
	var out []T
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reject drops the elements for which drop returns true.
func Reject[T any](in []T, drop func(T) bool) []T {
	return Filter(in, func(v T) bool { return !drop(v) })
}

// First returns the first element matching fn.
func First[T any](in []T, fn func(T) bool) (T, bool) {
	for _, v := range in {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element satisfies fn.
func Contains[T any](in []T, fn func(T) bool) bool {
	_, ok := First(in, fn)
	return ok
}

// Reduce folds in into an accumulator seeded with init.
func Reduce[T, R any](in []T, init R, fn func(acc R, v T) R) R {
	acc := init
	for _, v := range in {
		acc = fn(acc, v)
	}
	return acc
}

// Sum totals the float64 extracted from each element.
func Sum[T any](in []T, fn func(T) float64) float64 {
	return Reduce(in, 0, func(acc float64, v T) float64 { return acc + fn(v) })
}

// GroupBy buckets elements by the key fn produces.
func GroupBy[T any, K comparable](in []T, fn func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range in {
		k := fn(v)
		out[k] = append(out[k], v)
	}
	return out
}

// KeyBy indexes elements by key; later elements overwrite earlier ones.
func KeyBy[T any, K comparable](in []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(in))
	for _, v := range in {
		out[fn(v)] = v
	}
	return out
}

// Unique removes duplicates, preserving first-seen order.
func Unique[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	var out []T
	for _, v := range in {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Chunk splits in into consecutive slices of at most size elements.
func Chunk[T any](in []T, size int) [][]T {
	if size <= 0 {
		return nil
	}
	var out [][]T
	for len(in) > size {
		out = append(out, in[:size])
		in = in[size:]
	}
	if len(in) > 0 {
		out = append(out, in)
	}
	return out
}

// SortBy sorts in place and returns the slice for chaining.
func SortBy[T any](in []T, less func(a, b T) bool) []T {
	sort.Slice(in, func(i, j int) bool { return less(in[i], in[j]) })
	return in
}

// Flatten concatenates a slice of slices.
func Flatten[T any](in [][]T) []T {
	var out []T
	for _, s := range in {
		out = append(out, s...)
	}
	return out
}
