package seedchain

import "testing"

func TestNewZeroSeedNormalizes(t *testing.T) {
	zero := New(0)
	nonzero := New(fallbackSeed)

	if zero.BaseSeed != nonzero.BaseSeed {
		t.Fatalf("zero seed did not normalize: got %#x, want %#x", zero.BaseSeed, nonzero.BaseSeed)
	}
	if zero != nonzero {
		t.Fatalf("normalized chains diverge: %+v vs %+v", zero, nonzero)
	}
}

func TestNewIsDeterministic(t *testing.T) {
	a := New(12345)
	b := New(12345)
	if a != b {
		t.Fatalf("identical base seeds produced different chains: %+v vs %+v", a, b)
	}
}

func TestWithOverridesPinsNonZero(t *testing.T) {
	c := New(42)
	pinned := c.WithOverrides(777, 0)

	if pinned.PoissonSeed != 777 {
		t.Fatalf("poisson seed override not applied: got %d", pinned.PoissonSeed)
	}
	if pinned.TraversalSeed != c.TraversalSeed {
		t.Fatalf("traversal seed changed despite zero override: got %d want %d", pinned.TraversalSeed, c.TraversalSeed)
	}
}

func TestMixIsDeterministicAndSaltSensitive(t *testing.T) {
	a := Mix(100, SaltPoisson)
	b := Mix(100, SaltPoisson)
	if a != b {
		t.Fatalf("Mix not deterministic: %d vs %d", a, b)
	}

	c := Mix(100, SaltTraversal)
	if a == c {
		t.Fatalf("Mix produced identical output for different salts")
	}
}

func TestMixNeverZero(t *testing.T) {
	for base := uint64(0); base < 1000; base++ {
		if Mix(base, SaltCA) == 0 {
			t.Fatalf("Mix(%d, SaltCA) produced zero", base)
		}
	}
}
