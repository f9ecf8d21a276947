package rng

import "testing"

func TestNewSeeded_Reproducible(t *testing.T) {
	t.Parallel()

	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatal("expected identical sequences from identical seeds")
		}
	}
}

func TestBetween_StaysInRange(t *testing.T) {
	t.Parallel()

	src := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := Between(src, 100, 300)
		if v < 100 || v >= 300 {
			t.Fatalf("value %d outside [100, 300)", v)
		}
	}
}

func TestChance_ZeroAndOne(t *testing.T) {
	t.Parallel()

	src := NewSeeded(9)
	for i := 0; i < 100; i++ {
		if Chance(src, 0) {
			t.Fatal("probability 0 must never succeed")
		}
		if !Chance(src, 1) {
			t.Fatal("probability 1 must always succeed")
		}
	}
}

func TestPick_CoversAllElements(t *testing.T) {
	t.Parallel()

	src := NewSeeded(11)
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		seen[Pick(src, items)] = true
	}
	if len(seen) != len(items) {
		t.Errorf("expected all elements drawn, saw %v", seen)
	}
}
