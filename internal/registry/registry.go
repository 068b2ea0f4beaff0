package registry

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/melatron/hft-service/internal/aggregate"
	"github.com/melatron/hft-service/internal/apierr"
)

// DefaultShardCount is used when a caller constructs a Registry with
// shardCount <= 0. 64 comfortably exceeds 2x the core count of any machine
// this service is expected to run on, per spec.md §4.2's sizing guidance.
const DefaultShardCount = 64

// MinExponent and MaxExponent bound the valid query exponents; k = 10^e.
const (
	MinExponent = 1
	MaxExponent = 8
)

// OperationCounters tracks cumulative operation counts for the registry,
// updated atomically so reporting never contends with the hot path. Mirrors
// the teacher's shard.OperationStats: monotonically increasing, lock-free.
type OperationCounters struct {
	Appends uint64
	Queries uint64
	Errors  uint64
}

// Stats is a point-in-time snapshot of registry-wide state.
type Stats struct {
	LiveSymbols int
	Ops         OperationCounters
}

type shardBucket struct {
	mu      sync.Mutex
	indices map[string]*aggregate.Index
}

// Registry is the concurrent symbol -> aggregate.Index map described in
// doc.go. Construct with New; the zero value is not usable.
type Registry struct {
	shards   []*shardBucket
	counters OperationCounters
	capacity int
}

// New creates a Registry with shardCount shards (rounded up to the next
// power of two if not already one; DefaultShardCount if shardCount <= 0),
// whose indices are built with the given per-symbol capacity
// (aggregate.DefaultCapacity if capacity <= 0).
func New(shardCount, capacity int) *Registry {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	n := 1
	for n < shardCount {
		n <<= 1
	}

	shards := make([]*shardBucket, n)
	for i := range shards {
		shards[i] = &shardBucket{indices: make(map[string]*aggregate.Index)}
	}

	return &Registry{shards: shards, capacity: capacity}
}

// shardFor hashes symbol with FNV-1a, the same hash the teacher's
// ShardRegistry.GetShardForKey and shard.OwnsKey use, and masks into the
// shard slice (numShards is always a power of two, so mask == modulo).
func (r *Registry) shardFor(symbol string) *shardBucket {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	mask := uint32(len(r.shards) - 1)
	return r.shards[h.Sum32()&mask]
}

// Record appends values to symbol's index, creating the index on first
// use. If symbol has never been seen and its first batch is rejected
// (invalid, or larger than the capacity), no index is kept — the symbol
// stays unknown to future queries (spec.md §8 scenarios 4-5).
func (r *Registry) Record(symbol string, values []float64) error {
	b := r.shardFor(symbol)
	b.mu.Lock()
	defer b.mu.Unlock()

	idx, ok := b.indices[symbol]
	if !ok {
		if err := aggregate.ValidateBatch(values); err != nil {
			atomic.AddUint64(&r.counters.Errors, 1)
			return err
		}
		idx = aggregate.NewIndex(r.capacity)
	}

	atomic.AddUint64(&r.counters.Appends, 1)
	if err := idx.Append(values); err != nil {
		atomic.AddUint64(&r.counters.Errors, 1)
		return err
	}
	if !ok {
		b.indices[symbol] = idx
	}
	return nil
}

// Query computes suffix statistics over the last 10^exponent points of
// symbol. exponent must be in [MinExponent, MaxExponent]; symbol must have
// at least one prior successful Record call.
func (r *Registry) Query(symbol string, exponent int) (aggregate.Stats, error) {
	if exponent < MinExponent || exponent > MaxExponent {
		atomic.AddUint64(&r.counters.Errors, 1)
		return aggregate.Stats{}, apierr.New(apierr.InvalidExponent, "exponent %d out of range [%d, %d]", exponent, MinExponent, MaxExponent)
	}
	k := pow10(exponent)

	b := r.shardFor(symbol)
	b.mu.Lock()
	defer b.mu.Unlock()

	idx, ok := b.indices[symbol]
	if !ok {
		atomic.AddUint64(&r.counters.Errors, 1)
		return aggregate.Stats{}, apierr.New(apierr.UnknownSymbol, "symbol %q has no recorded data", symbol)
	}

	atomic.AddUint64(&r.counters.Queries, 1)
	stats, err := idx.SuffixStats(k)
	if err != nil {
		atomic.AddUint64(&r.counters.Errors, 1)
		return aggregate.Stats{}, err
	}
	return stats, nil
}

func pow10(exponent int) int {
	k := 1
	for i := 0; i < exponent; i++ {
		k *= 10
	}
	return k
}

// Symbols returns a sorted snapshot of every symbol the registry has ever
// recorded a successful append for. Mirrors shard.Store.List(): a snapshot
// that may be stale the instant it is returned under concurrent writers.
func (r *Registry) Symbols() []string {
	var out []string
	for _, b := range r.shards {
		b.mu.Lock()
		for sym := range b.indices {
			out = append(out, sym)
		}
		b.mu.Unlock()
	}
	slices.Sort(out)
	return out
}

// Stats returns a snapshot of registry-wide operation counters and the
// current live-symbol count.
func (r *Registry) Stats() Stats {
	live := 0
	for _, b := range r.shards {
		b.mu.Lock()
		live += len(b.indices)
		b.mu.Unlock()
	}
	return Stats{
		LiveSymbols: live,
		Ops: OperationCounters{
			Appends: atomic.LoadUint64(&r.counters.Appends),
			Queries: atomic.LoadUint64(&r.counters.Queries),
			Errors:  atomic.LoadUint64(&r.counters.Errors),
		},
	}
}

// ShardCount returns the number of shards this registry was built with.
func (r *Registry) ShardCount() int { return len(r.shards) }
