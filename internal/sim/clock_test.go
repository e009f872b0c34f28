package sim

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/avoronov/forumsim/internal/domain"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestAdvance_StaysWithinRange(t *testing.T) {
	t.Parallel()
	rng := testRNG(1)
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		got, err := Advance(rng, base, 20, 50, 59)
		if err != nil {
			t.Fatalf("Advance: unexpected error: %v", err)
		}

		lo := base.Add(20*time.Hour + 50*time.Minute)
		hi := base.Add(20*time.Hour + 59*time.Minute + 59*time.Second)
		if got.Before(lo) || got.After(hi) {
			t.Fatalf("Advance out of range: got %v, want within [%v, %v]", got, lo, hi)
		}
		if got.Day() != base.Day() {
			t.Fatalf("Advance crossed into the next day: %v", got)
		}
	}
}

func TestAdvance_ClampsToEndOfDay(t *testing.T) {
	t.Parallel()
	rng := testRNG(2)
	base := time.Date(2025, time.January, 1, 23, 30, 0, 0, time.UTC)
	want := time.Date(2025, time.January, 1, 23, 59, 59, 0, time.UTC)

	for i := 0; i < 50; i++ {
		got, err := Advance(rng, base, 20, 50, 59)
		if err != nil {
			t.Fatalf("Advance: unexpected error: %v", err)
		}
		if !got.Equal(want) {
			t.Fatalf("expected clamp to %v, got %v", want, got)
		}
	}
}

func TestAdvance_IdempotentAtDayEnd(t *testing.T) {
	t.Parallel()
	rng := testRNG(3)
	end := time.Date(2025, time.January, 1, 23, 59, 59, 0, time.UTC)

	got, err := Advance(rng, end, 0, 0, 0)
	if err != nil {
		t.Fatalf("Advance: unexpected error: %v", err)
	}
	if !got.Equal(end) {
		t.Errorf("expected %v to stay pinned at day end, got %v", end, got)
	}
}

func TestAdvance_RejectsInvertedRange(t *testing.T) {
	t.Parallel()
	rng := testRNG(4)
	base := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

	_, err := Advance(rng, base, 0, 10, 5)
	if err == nil {
		t.Fatal("expected error for min > max")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected domain.ErrValidation, got %v", err)
	}
}

func TestEndOfDay(t *testing.T) {
	t.Parallel()
	in := time.Date(2025, time.March, 14, 9, 26, 53, 589, time.UTC)
	want := time.Date(2025, time.March, 14, 23, 59, 59, 0, time.UTC)

	if got := EndOfDay(in); !got.Equal(want) {
		t.Errorf("EndOfDay: got %v, want %v", got, want)
	}
}
