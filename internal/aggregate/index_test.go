package aggregate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/melatron/hft-service/internal/apierr"
)

func naiveStats(values []float64, k int) Stats {
	window := values[len(values)-k:]
	min, max, sum, sumSq := math.Inf(1), math.Inf(-1), 0.0, 0.0
	for _, v := range window {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(k)
	variance := sumSq/float64(k) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return Stats{Min: min, Max: max, Last: window[len(window)-1], Mean: mean, Var: variance}
}

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestAppendAndSuffixStatsScenario1(t *testing.T) {
	idx := NewIndex(100)
	values := []float64{150.1, 150.5, 151.0, 149.8, 150.2, 151.1, 151.2, 152.0, 151.5, 151.9}
	if err := idx.Append(values); err != nil {
		t.Fatalf("append: %v", err)
	}

	stats, err := idx.SuffixStats(10)
	if err != nil {
		t.Fatalf("suffix stats: %v", err)
	}
	if !almostEqual(stats.Min, 149.8) {
		t.Errorf("min = %v, want 149.8", stats.Min)
	}
	if !almostEqual(stats.Max, 152.0) {
		t.Errorf("max = %v, want 152.0", stats.Max)
	}
	if !almostEqual(stats.Last, 151.9) {
		t.Errorf("last = %v, want 151.9", stats.Last)
	}
	if !almostEqual(stats.Mean, 150.93) {
		t.Errorf("mean = %v, want 150.93", stats.Mean)
	}
	if !almostEqual(stats.Var, 0.5380099999999984) {
		t.Errorf("var = %v, want ~0.5380099999999984", stats.Var)
	}
}

func TestAppendRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"nan", []float64{math.NaN()}},
		{"nan in middle of batch", []float64{1.0, math.NaN(), 2.0}},
		{"negative", []float64{-1.0}},
		{"positive infinity", []float64{math.Inf(1)}},
		{"negative infinity", []float64{math.Inf(-1)}},
		{"empty batch", []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex(10)
			err := idx.Append(tt.values)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			kind, ok := apierr.KindOf(err)
			if !ok {
				t.Fatalf("expected apierr.Error, got %T: %v", err, err)
			}
			if kind != apierr.InvalidValue && kind != apierr.EmptyBatch {
				t.Errorf("kind = %v, want InvalidValue or EmptyBatch", kind)
			}
			if idx.N() != 0 {
				t.Errorf("n = %d after rejected append, want 0 (all-or-nothing)", idx.N())
			}
		})
	}
}

func TestAppendAtomicOnPartialBatchFailure(t *testing.T) {
	idx := NewIndex(10)
	if err := idx.Append([]float64{1, 2, 3}); err != nil {
		t.Fatalf("setup append: %v", err)
	}
	if err := idx.Append([]float64{4, math.NaN(), 6}); err == nil {
		t.Fatal("expected rejection")
	}
	if idx.N() != 3 {
		t.Fatalf("n = %d, want 3 (rejected batch must not partially apply)", idx.N())
	}
	stats, err := idx.SuffixStats(3)
	if err != nil {
		t.Fatalf("suffix stats: %v", err)
	}
	if !almostEqual(stats.Last, 3) {
		t.Errorf("last = %v, want 3 (rejected batch must not touch last)", stats.Last)
	}
}

func TestSuffixStatsBoundaries(t *testing.T) {
	idx := NewIndex(10)
	if err := idx.Append([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := idx.SuffixStats(10); err != nil {
		t.Errorf("k == n should succeed, got %v", err)
	}

	_, err := idx.SuffixStats(11)
	if err == nil {
		t.Fatal("k == n+1 should fail")
	}
	if kind, _ := apierr.KindOf(err); kind != apierr.InsufficientData {
		t.Errorf("kind = %v, want InsufficientData", kind)
	}
}

func TestCapacityExceeded(t *testing.T) {
	idx := NewIndex(5)
	if err := idx.Append([]float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := idx.Append([]float64{5}); err != nil {
		t.Fatalf("filling the last slot should succeed: %v", err)
	}
	if idx.State() != StateFull {
		t.Errorf("state = %v, want Full", idx.State())
	}
	err := idx.Append([]float64{6})
	if err == nil {
		t.Fatal("expected CapacityExceeded")
	}
	if kind, _ := apierr.KindOf(err); kind != apierr.CapacityExceeded {
		t.Errorf("kind = %v, want CapacityExceeded", kind)
	}
}

func TestBatchPartitioningIsIdempotent(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70}

	whole := NewIndex(100)
	if err := whole.Append(values); err != nil {
		t.Fatalf("whole append: %v", err)
	}

	split := NewIndex(100)
	if err := split.Append(values[:1]); err != nil {
		t.Fatalf("split append 1: %v", err)
	}
	if err := split.Append(values[1:]); err != nil {
		t.Fatalf("split append 2: %v", err)
	}

	for _, k := range []int{1, 3, 7} {
		ws, err := whole.SuffixStats(k)
		if err != nil {
			t.Fatalf("whole suffix stats k=%d: %v", k, err)
		}
		ss, err := split.SuffixStats(k)
		if err != nil {
			t.Fatalf("split suffix stats k=%d: %v", k, err)
		}
		if ws != ss {
			t.Errorf("k=%d: whole=%+v split=%+v, expected identical state", k, ws, ss)
		}
	}
}

func TestSuffixStatsQueryIsIdempotent(t *testing.T) {
	idx := NewIndex(10)
	if err := idx.Append([]float64{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("append: %v", err)
	}
	a, err := idx.SuffixStats(5)
	if err != nil {
		t.Fatalf("stats 1: %v", err)
	}
	b, err := idx.SuffixStats(5)
	if err != nil {
		t.Fatalf("stats 2: %v", err)
	}
	if a != b {
		t.Errorf("repeated query without intervening append must be identical: %+v != %+v", a, b)
	}
}

func TestSuffixStatsAgainstNaiveRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	idx := NewIndex(500)
	var values []float64

	for round := 0; round < 50; round++ {
		batchLen := 1 + rng.Intn(10)
		batch := make([]float64, batchLen)
		for i := range batch {
			batch[i] = rng.Float64() * 1000
		}
		if idx.N()+batchLen > 500 {
			break
		}
		if err := idx.Append(batch); err != nil {
			t.Fatalf("append: %v", err)
		}
		values = append(values, batch...)

		for _, k := range []int{1, 2, 5} {
			if k > len(values) {
				continue
			}
			got, err := idx.SuffixStats(k)
			if err != nil {
				t.Fatalf("suffix stats k=%d: %v", k, err)
			}
			want := naiveStats(values, k)
			if !almostEqual(got.Min, want.Min) || !almostEqual(got.Max, want.Max) ||
				!almostEqual(got.Mean, want.Mean) || !almostEqual(got.Var, want.Var) ||
				!almostEqual(got.Last, want.Last) {
				t.Fatalf("round %d k=%d: got %+v want %+v", round, k, got, want)
			}
		}
	}
}

func TestVarianceNeverNegative(t *testing.T) {
	idx := NewIndex(4)
	// Four equal values drive sumSq/k - mean^2 to exactly zero, a case
	// prone to landing just below zero under floating-point cancellation.
	if err := idx.Append([]float64{7, 7, 7, 7}); err != nil {
		t.Fatalf("append: %v", err)
	}
	stats, err := idx.SuffixStats(4)
	if err != nil {
		t.Fatalf("suffix stats: %v", err)
	}
	if stats.Var < 0 {
		t.Errorf("var = %v, must never be negative", stats.Var)
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 100: 128, 100_000_000: 134217728}
	for in, want := range cases {
		if got := nextPow2(in); got != want {
			t.Errorf("nextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}
