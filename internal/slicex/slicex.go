package slicex

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func Map[E1, E2 any](x []E1, conv func(e E1) E2) []E2 {
	if x == nil {
		return nil
	}
	if len(x) == 0 {
		return []E2{}
	}
	res := make([]E2, len(x))
	for i, e := range x {
		res[i] = conv(e)
	}
	return res
}

// Dups returns the elements that appear more than once in x, in the order
// of their second appearance.
func Dups[T comparable](x []T) []T {
	var dups []T
	seen := make(map[T]int, len(x))
	for _, e := range x {
		seen[e]++
		if seen[e] == 2 {
			dups = append(dups, e)
		}
	}
	return dups
}

// Uniq returns the elements of x without repeats, keeping the first
// occurrence of each.
func Uniq[T comparable](x []T) []T {
	if x == nil {
		return nil
	}
	res := make([]T, 0, len(x))
	seen := make(map[T]struct{}, len(x))
	for _, e := range x {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		res = append(res, e)
	}
	return res
}

// ConcatDeDup returns the union of x sorted.
func ConcatDeDup[T constraints.Ordered](x ...[]T) []T {
	if x == nil {
		return nil
	}
	s := make(map[T]struct{})
	for _, xx := range x {
		for _, e := range xx {
			s[e] = struct{}{}
		}
	}
	ret := maps.Keys(s)
	slices.Sort(ret)
	return ret
}
