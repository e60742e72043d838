package stats

import (
	"iter"
	"slices"
	"strings"
)

// NamedStats pairs a type name with its tallies, for sorted reporting.
type NamedStats struct {
	Name string
	TypeStats
}

// Result is the merged outcome of a scan: the per-type tallies plus the
// counts of skipped lines. A Result is immutable once built and safe for
// concurrent reads.
type Result struct {
	types     map[string]TypeStats
	malformed uint64
	missing   uint64
}

// Merge combines any number of partial aggregates into a final Result.
//
// The union sums both counters per type name. Nil partials and empty
// partials are identity elements, and because addition is commutative and
// associative the outcome does not depend on argument order or on how the
// input was split across workers.
func Merge(partials ...*Partial) *Result {
	distinct := 0
	for _, p := range partials {
		if p != nil {
			distinct += p.distinct
		}
	}

	res := &Result{
		types: make(map[string]TypeStats, distinct),
	}
	for _, p := range partials {
		if p == nil {
			continue
		}

		for _, head := range p.entries {
			for e := head; e != nil; e = e.next {
				ts := res.types[e.name]
				ts.Count += e.stats.Count
				ts.Bytes += e.stats.Bytes
				res.types[e.name] = ts
			}
		}

		res.malformed += p.malformed
		res.missing += p.missing
	}

	return res
}

// Get returns the tallies for one type name.
func (r *Result) Get(name string) (TypeStats, bool) {
	ts, ok := r.types[name]
	return ts, ok
}

// Len returns the number of distinct type names.
func (r *Result) Len() int {
	return len(r.types)
}

// Lines returns the number of well-formed records across all types.
func (r *Result) Lines() uint64 {
	var n uint64
	for _, ts := range r.types {
		n += ts.Count
	}

	return n
}

// TotalBytes returns the byte size of all well-formed lines combined.
func (r *Result) TotalBytes() uint64 {
	var n uint64
	for _, ts := range r.types {
		n += ts.Bytes
	}

	return n
}

// Malformed returns the number of lines skipped as malformed.
func (r *Result) Malformed() uint64 {
	return r.malformed
}

// Missing returns the number of lines skipped for lacking a type field.
func (r *Result) Missing() uint64 {
	return r.missing
}

// Skipped returns the total number of skipped lines.
func (r *Result) Skipped() uint64 {
	return r.malformed + r.missing
}

// All returns an iterator over all type names and their tallies in
// unspecified order.
//
// Example:
//
//	for name, ts := range result.All() {
//		fmt.Printf("%s: %d records, %d bytes\n", name, ts.Count, ts.Bytes)
//	}
func (r *Result) All() iter.Seq2[string, TypeStats] {
	return func(yield func(string, TypeStats) bool) {
		for name, ts := range r.types {
			if !yield(name, ts) {
				return
			}
		}
	}
}

// Sorted returns the tallies ordered by count descending, ties broken by
// name ascending. The returned slice is freshly allocated on every call.
func (r *Result) Sorted() []NamedStats {
	out := make([]NamedStats, 0, len(r.types))
	for name, ts := range r.types {
		out = append(out, NamedStats{Name: name, TypeStats: ts})
	}
	slices.SortFunc(out, func(a, b NamedStats) int {
		switch {
		case a.Count > b.Count:
			return -1
		case a.Count < b.Count:
			return 1
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})

	return out
}
