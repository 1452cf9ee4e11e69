// Package rangeindex provides a dynamic index of closed intervals that can be
// queried for every entry overlapping a point or a range.
package rangeindex

import "sort"

// maxCapacityHint bounds the preallocation taken from a capacity hint
const maxCapacityHint = 4096

type entry[T any] struct {
	start int64
	end   int64
	value T
}

// Index stores [start, end] intervals ordered by start. Entries with equal
// starts keep their insertion order. maxEnd[i] is the largest end among the
// first i+1 entries, which lets a query stop scanning early.
//
// Index is not safe for concurrent use.
type Index[T any] struct {
	entries []entry[T]
	maxEnd  []int64
}

// New creates an empty index. capacityHint only sizes the initial allocation;
// the index grows past it without limit.
func New[T any](capacityHint int) *Index[T] {
	if capacityHint < 0 {
		capacityHint = 0
	}
	if capacityHint > maxCapacityHint {
		capacityHint = maxCapacityHint
	}
	return &Index[T]{
		entries: make([]entry[T], 0, capacityHint),
		maxEnd:  make([]int64, 0, capacityHint),
	}
}

// Len returns the number of stored intervals
func (idx *Index[T]) Len() int {
	return len(idx.entries)
}

// Insert adds the interval [start, end] carrying value
func (idx *Index[T]) Insert(start, end int64, value T) {
	// First position whose start is strictly greater keeps ties in insertion order
	pos := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].start > start
	})

	idx.entries = append(idx.entries, entry[T]{})
	copy(idx.entries[pos+1:], idx.entries[pos:])
	idx.entries[pos] = entry[T]{start: start, end: end, value: value}

	idx.maxEnd = append(idx.maxEnd, 0)
	for i := pos; i < len(idx.entries); i++ {
		m := idx.entries[i].end
		if i > 0 && idx.maxEnd[i-1] > m {
			m = idx.maxEnd[i-1]
		}
		idx.maxEnd[i] = m
	}
}

// QueryPoint returns the values of every interval containing point
func (idx *Index[T]) QueryPoint(point int64) []T {
	return idx.QueryRange(point, point)
}

// QueryRange returns the values of every interval overlapping the closed range
// [lo, hi], in ascending start order
func (idx *Index[T]) QueryRange(lo, hi int64) []T {
	if hi < lo {
		lo, hi = hi, lo
	}

	// Entries at or past limit start after hi
	limit := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].start > hi
	})

	// Entries before first all end before lo
	first := sort.Search(limit, func(i int) bool {
		return idx.maxEnd[i] >= lo
	})

	var out []T
	for i := first; i < limit; i++ {
		if idx.entries[i].end >= lo {
			out = append(out, idx.entries[i].value)
		}
	}
	return out
}
