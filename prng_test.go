package raychel

import "testing"

// TestXoroshiro128RoundTrip freezes the first five outputs of
// Xoroshiro128+ seeded with 1 as a regression snapshot, the way the
// reference generator's own test vectors are pinned against the
// canonical prng.di.unimi.it implementation.
func TestXoroshiro128RoundTrip(t *testing.T) {
	want := []uint64{
		2318297105924397993,
		4428594851179951356,
		5997569412260415011,
		10857327688208878109,
		14315830333716030234,
	}

	x := NewXoroshiro128(1)
	for i, w := range want {
		got := x.Next()
		if got != w {
			t.Fatalf("output %d: got %d, want %d", i, got, w)
		}
	}
}

func TestXoroshiro128DeterministicAcrossInstances(t *testing.T) {
	a := NewXoroshiro128(42)
	b := NewXoroshiro128(42)
	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sample %d diverged between two generators seeded identically", i)
		}
	}
}

func TestXoroshiro128DifferentSeedsDiverge(t *testing.T) {
	a := NewXoroshiro128(1)
	b := NewXoroshiro128(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("seeds 1 and 2 produced identical streams")
	}
}

func TestXoroshiro128Jump(t *testing.T) {
	a := NewXoroshiro128FromState(1, 2)
	b := NewXoroshiro128FromState(1, 2)
	a.Jump()
	if a.s0 == b.s0 && a.s1 == b.s1 {
		t.Fatal("Jump left state unchanged")
	}

	c := NewXoroshiro128FromState(1, 2)
	c.Jump()
	if a.s0 != c.s0 || a.s1 != c.s1 {
		t.Fatal("Jump is not deterministic from the same starting state")
	}
}

func TestRandomStateUniformRandomRange(t *testing.T) {
	r := NewRandomState(7)
	for i := 0; i < 10000; i++ {
		v := r.UniformRandom()
		if v < -1 || v >= 1 {
			t.Fatalf("UniformRandom out of [-1,1): %v", v)
		}
	}
}
