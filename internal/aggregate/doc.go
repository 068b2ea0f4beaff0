// Package aggregate implements the per-symbol range-aggregate index: an
// append-only sequence of non-negative float64 price points backed by four
// parallel iterative segment trees (min, max, sum, sum-of-squares), sized to
// serve suffix-window queries over up to 10^8 points with O(log C)
// combine-steps per query and no recursion on the hot path.
//
// # Layout
//
// Each tree is an implicit array of length 2*L, where L is the smallest
// power of two >= the index's capacity C. Leaves live at [L, L+C); internal
// node p has children 2p and 2p+1 and parent p>>1, the classic pointer-free
// segment tree encoding also used by the Maemo32 SupraX example's
// bitmap-indexed reservation stations (its bitmap dependency tracking is the
// same "no pointer structure" idea applied to instruction scheduling rather
// than range queries).
//
// # Concurrency
//
// Index does not synchronize itself. It is built to be owned exclusively
// by one registry shard bucket at a time (see internal/registry), the same
// division of responsibility the teacher draws between shard.Shard (owns
// its Store, no self-locking beyond atomic stat counters) and the
// coordinator's ShardRegistry (owns the map, holds the lock). Callers that
// need concurrent access to a single Index must serialize it externally.
package aggregate
