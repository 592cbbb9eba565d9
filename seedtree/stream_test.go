package seedtree

import "testing"

func TestNewStream_Reproducible(t *testing.T) {
	a := NewStream("42_book_0_likes_count")
	b := NewStream("42_book_0_likes_count")

	for i := 0; i < 100; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}

func TestNewStream_DifferentSeedsDiverge(t *testing.T) {
	a := NewStream("42_book_0_likes_count")
	b := NewStream("42_book_1_likes_count")

	same := 0
	for i := 0; i < 50; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same > 0 {
		t.Errorf("streams from different seeds produced %d identical draws", same)
	}
}

func TestNewNumericStream_Reproducible(t *testing.T) {
	a := NewNumericStream(NumericSeed("x"))
	b := NewNumericStream(NumericSeed("x"))

	for i := 0; i < 20; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("draw %d differs", i)
		}
	}
}

func TestRandStream_Draws(t *testing.T) {
	s := NewStream("count")
	if s.Draws() != 0 {
		t.Fatalf("fresh stream Draws() = %d, want 0", s.Draws())
	}

	s.Float64()
	s.IntN(10)
	s.Uint64()

	if s.Draws() != 3 {
		t.Errorf("Draws() = %d, want 3", s.Draws())
	}
}

func TestRandStream_UniformMean(t *testing.T) {
	s := NewStream("mean")
	const n = 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Float64()
	}
	mean := sum / n
	if mean < 0.48 || mean > 0.52 {
		t.Errorf("mean of %d draws = %v, want ~0.5", n, mean)
	}
}
