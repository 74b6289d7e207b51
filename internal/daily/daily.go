// internal/daily/daily.go
//
// Daily target selection: everyone playing on the same UTC date gets the same
// word. The index is HMAC-SHA256(salt, YYYY-MM-DD) reduced modulo the
// vocabulary size, so it cannot be predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index in [0, n) for the date of t.
func WordIndex(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes as the modulus source
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Indexed is an ordered word collection, such as *words.Vocabulary.
type Indexed interface {
	Len() int
	At(i int) string
}

// Picker picks the word of the day.
type Picker struct {
	words Indexed
	salt  string
	now   func() time.Time
}

func NewPicker(words Indexed, salt string) *Picker {
	return &Picker{words: words, salt: salt, now: time.Now}
}

// Pick returns today's word.
func (p *Picker) Pick() string {
	return p.words.At(WordIndex(p.now(), p.salt, p.words.Len()))
}

// Today is the date key Pick currently resolves to.
func (p *Picker) Today() string { return DateKey(p.now()) }
