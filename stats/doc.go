// Package stats accumulates and merges per-type record tallies.
//
// Each scan worker owns a single Partial and records into it without any
// synchronization. After all workers have joined, Merge folds the partials
// into one Result. Addition over counts and byte sizes is commutative and
// associative, so the merged Result is identical for any worker count and
// any merge order.
//
// Partials key their entries by the xxHash64 of the decoded type name and
// verify the name on every hit, chaining entries when two names collide on
// the same hash. Recording an already-seen type performs no allocations.
package stats
