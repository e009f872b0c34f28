// Package faker implements the generator's text synthesizer on top of
// gofakeit. It produces human-like user names, topic titles and comment
// bodies; nothing here aims for linguistic fidelity.
package faker

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

const titleWords = 3

// Synth satisfies sim.TextSynth.
type Synth struct {
	f *gofakeit.Faker
}

// New creates a Synth. seed 0 derives a random seed.
func New(seed uint64) *Synth {
	return &Synth{f: gofakeit.New(seed)}
}

// Name returns a person's display name.
func (s *Synth) Name() string {
	return s.f.Name()
}

// Title returns a short topic title.
func (s *Synth) Title() string {
	return s.f.Sentence(titleWords)
}

// Text returns body text of at most maxChars characters, built from whole
// sentences where possible.
func (s *Synth) Text(maxChars int) string {
	if maxChars <= 0 {
		return ""
	}

	var b strings.Builder
	for b.Len() < maxChars {
		sentence := s.f.Sentence(8)
		if b.Len()+len(sentence)+1 > maxChars {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}

	if b.Len() == 0 {
		// maxChars too small for a full sentence; hard-truncate one.
		sentence := s.f.Sentence(8)
		if len(sentence) > maxChars {
			sentence = sentence[:maxChars]
		}
		return sentence
	}

	return b.String()
}
