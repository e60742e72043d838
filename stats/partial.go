package stats

import (
	"github.com/adrianbenavides/word-counter/internal/hash"
)

// TypeStats holds the tallies for one type name: how many records carried it
// and the total raw byte size of their lines, line terminators included.
type TypeStats struct {
	Count uint64
	Bytes uint64
}

// entry is one distinct type name. Entries whose names collide on the same
// hash chain through next; the chain has length 1 for practically all inputs.
type entry struct {
	name  string
	stats TypeStats
	next  *entry
}

// Partial aggregates one worker's share of the input.
//
// A Partial is not safe for concurrent use. Each worker records into its own
// Partial while scanning and the partials are merged only after every worker
// has finished, so no locking is needed anywhere on the hot path.
type Partial struct {
	entries   map[uint64]*entry
	distinct  int
	malformed uint64
	missing   uint64
}

// NewPartial creates an empty Partial.
func NewPartial() *Partial {
	return &Partial{
		entries: make(map[uint64]*entry, 128),
	}
}

// Record adds one record with the given decoded type name and raw line size.
//
// The key bytes are only read during the call: the first sighting of a type
// copies them into an owned string, so callers are free to reuse or discard
// the backing buffer afterwards. Recording a type that was seen before does
// not allocate.
func (p *Partial) Record(key []byte, size int) {
	id := hash.ID(key)
	head := p.entries[id]
	for e := head; e != nil; e = e.next {
		if e.name == string(key) {
			e.stats.Count++
			e.stats.Bytes += uint64(size)

			return
		}
	}

	p.entries[id] = &entry{
		name:  string(key),
		stats: TypeStats{Count: 1, Bytes: uint64(size)},
		next:  head,
	}
	p.distinct++
}

// SkipMalformed tallies a line whose object syntax broke before a type field
// could be located.
func (p *Partial) SkipMalformed() {
	p.malformed++
}

// SkipMissing tallies a well-formed line that carries no type field.
func (p *Partial) SkipMissing() {
	p.missing++
}

// Distinct returns the number of distinct type names recorded so far.
func (p *Partial) Distinct() int {
	return p.distinct
}

// Malformed returns the number of lines skipped as malformed.
func (p *Partial) Malformed() uint64 {
	return p.malformed
}

// Missing returns the number of lines skipped for lacking a type field.
func (p *Partial) Missing() uint64 {
	return p.missing
}
