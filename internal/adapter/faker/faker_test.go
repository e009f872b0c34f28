package faker

import (
	"strings"
	"testing"
)

func TestSynth_Name(t *testing.T) {
	t.Parallel()
	s := New(1)

	name := s.Name()
	if strings.TrimSpace(name) == "" {
		t.Fatal("expected a non-empty name")
	}
}

func TestSynth_Title(t *testing.T) {
	t.Parallel()
	s := New(1)

	title := s.Title()
	if strings.TrimSpace(title) == "" {
		t.Fatal("expected a non-empty title")
	}
}

func TestSynth_Text_RespectsLimit(t *testing.T) {
	t.Parallel()
	s := New(1)

	for _, max := range []int{5, 20, 200, 1000} {
		for i := 0; i < 20; i++ {
			text := s.Text(max)
			if text == "" {
				t.Fatalf("Text(%d): expected non-empty text", max)
			}
			if len(text) > max {
				t.Fatalf("Text(%d) produced %d characters: %q", max, len(text), text)
			}
		}
	}
}

func TestSynth_Text_ZeroLimit(t *testing.T) {
	t.Parallel()
	s := New(1)

	if got := s.Text(0); got != "" {
		t.Errorf("Text(0): got %q, want empty", got)
	}
}

func TestSynth_Deterministic(t *testing.T) {
	t.Parallel()
	a, b := New(7), New(7)

	if na, nb := a.Name(), b.Name(); na != nb {
		t.Errorf("same seed produced different names: %q vs %q", na, nb)
	}
	if ta, tb := a.Title(), b.Title(); ta != tb {
		t.Errorf("same seed produced different titles: %q vs %q", ta, tb)
	}
	if xa, xb := a.Text(200), b.Text(200); xa != xb {
		t.Errorf("same seed produced different text")
	}
}
