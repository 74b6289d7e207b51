package game

// Keys is the session-wide KeyStatus projection, one slot per letter A–Z.
// The zero value has every letter Unknown.
type Keys [26]KeyStatus

// Status returns the best-known status of letter (upper-case A–Z).
// Letters outside A–Z are always Unknown.
func (k *Keys) Status(letter byte) KeyStatus {
	i := idx(letter)
	if i < 0 {
		return KeyUnknown
	}
	return k[i]
}

// Observe folds a single classification for letter into the projection and
// returns the resulting status. A status is never downgraded.
func (k *Keys) Observe(letter byte, c Classification) KeyStatus {
	i := idx(letter)
	if i < 0 {
		return KeyUnknown
	}
	if next := c.KeyStatus(); next > k[i] {
		k[i] = next
	}
	return k[i]
}

// Apply folds every position of a scored guess into the projection.
func (k *Keys) Apply(guess string, classes []Classification) {
	for i := range classes {
		k.Observe(guess[i], classes[i])
	}
}

// Known returns the letters with a status other than Unknown.
func (k *Keys) Known() map[string]KeyStatus {
	out := make(map[string]KeyStatus)
	for i, st := range k {
		if st != KeyUnknown {
			out[string(rune('A'+i))] = st
		}
	}
	return out
}

// idx maps an upper-case ASCII letter to 0..25, or -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}
