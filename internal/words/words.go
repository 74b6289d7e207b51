// internal/words/words.go
//
// Vocabulary management for the game.
//
// Responsibilities:
//   - Build an immutable Vocabulary from a list, a word file or the embedded defaults.
//   - Normalize entries to upper case and drop anything that is not exactly
//     Length A–Z letters (the embedded list carries a few longer/shorter words).
//   - Pick targets uniformly at random.
//
// Word files:
//   - One word per line; blank lines and lines starting with "#" are skipped.
//
// A Vocabulary is safe for concurrent use.

package words

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/develordle/assets"
	"github.com/robalobadob/develordle/internal/game"
)

// Length is the word length sessions are played with.
const Length = game.WordLength

// ErrEmpty is returned when no usable word survives normalization.
var ErrEmpty = errors.New("words: vocabulary is empty")

// Vocabulary is a fixed collection of equal-length upper-case words.
type Vocabulary struct {
	words []string
	set   map[string]struct{}

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Vocabulary.
type Option func(*Vocabulary)

// WithRand sets the random source used by Pick. Useful for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(v *Vocabulary) { v.rng = r }
}

// New builds a Vocabulary from list. Entries are trimmed and upper-cased;
// entries of the wrong length or with non-letters are dropped, as are duplicates.
func New(list []string, opts ...Option) (*Vocabulary, error) {
	v := &Vocabulary{}
	for _, opt := range opts {
		opt(v)
	}
	if v.rng == nil {
		v.rng = rand.New(rand.NewPCG(seed(), seed()))
	}

	normalized := lo.Map(list, func(w string, _ int) string {
		return strings.ToUpper(strings.TrimSpace(w))
	})
	kept := lo.Filter(normalized, func(w string, _ int) bool {
		if len(w) != Length || !isAlpha(w) {
			if w != "" {
				log.Debug().Str("word", w).Int("length", Length).Msg("skipping word")
			}
			return false
		}
		return true
	})
	v.words = lo.Uniq(kept)
	if len(v.words) == 0 {
		return nil, ErrEmpty
	}
	v.set = lo.SliceToMap(v.words, func(w string) (string, struct{}) {
		return w, struct{}{}
	})
	return v, nil
}

// Default builds the Vocabulary from the embedded word list.
func Default(opts ...Option) (*Vocabulary, error) {
	list, err := assets.WordList()
	if err != nil {
		return nil, fmt.Errorf("read embedded words: %w", err)
	}
	return New(list, opts...)
}

// Load builds a Vocabulary from a word file.
func Load(path string, opts ...Option) (*Vocabulary, error) {
	list, err := readWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	v, err := New(list, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Pick returns a word chosen uniformly at random.
func (v *Vocabulary) Pick() string {
	v.mu.Lock()
	i := v.rng.IntN(len(v.words))
	v.mu.Unlock()
	return v.words[i]
}

// Contains reports whether w (any case) is in the vocabulary.
func (v *Vocabulary) Contains(w string) bool {
	_, ok := v.set[strings.ToUpper(w)]
	return ok
}

// Len is the number of distinct words.
func (v *Vocabulary) Len() int { return len(v.words) }

// At returns the i-th word in load order.
func (v *Vocabulary) At(i int) string { return v.words[i] }

// WordLength is the length every word has.
func (v *Vocabulary) WordLength() int { return Length }

// Words returns a copy of the word list in load order.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ParseWordList(f)
}

// isAlpha reports whether s is all upper-case ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// seed draws 64 bits from crypto/rand.
func seed() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
