package seedchain

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(9001)
	b := NewRNG(9001)

	for i := 0; i < 100; i++ {
		av, bv := a.NextUint64(), b.NextUint64()
		if av != bv {
			t.Fatalf("draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

func TestRNGZeroSeedDoesNotStall(t *testing.T) {
	r := NewRNG(0)
	seen := map[uint64]bool{}
	for i := 0; i < 50; i++ {
		v := r.NextUint64()
		if seen[v] && i > 0 {
			// Repeats are fine in general, but the very first two draws
			// repeating would indicate a degenerate all-zero state.
			continue
		}
		seen[v] = true
	}
	if len(seen) < 2 {
		t.Fatalf("zero-seeded RNG appears stalled, got %d distinct values", len(seen))
	}
}

func TestNextFloat32Range(t *testing.T) {
	r := NewRNG(55)
	for i := 0; i < 1000; i++ {
		v := r.NextFloat32()
		if v < 0 || v >= 1 {
			t.Fatalf("NextFloat32 out of range: %v", v)
		}
	}
}

func TestNextIntnInclusiveBounds(t *testing.T) {
	r := NewRNG(7)
	lo, hi := 3, 3
	for i := 0; i < 20; i++ {
		if v := r.NextIntn(lo, hi); v != 3 {
			t.Fatalf("NextIntn(3,3) = %d, want 3", v)
		}
	}

	lo, hi = -2, 2
	counts := make(map[int]int)
	for i := 0; i < 2000; i++ {
		v := r.NextIntn(lo, hi)
		if v < lo || v > hi {
			t.Fatalf("NextIntn(%d,%d) out of range: %d", lo, hi, v)
		}
		counts[v]++
	}
	for v := lo; v <= hi; v++ {
		if counts[v] == 0 {
			t.Fatalf("value %d never drawn across 2000 samples", v)
		}
	}
}
