// Package assets ships the built-in developer word list.
package assets

import (
	"bufio"
	"bytes"
	_ "embed"
	"io"
	"strings"
)

//go:embed words.txt
var wordsTxt []byte

// WordList returns the embedded default vocabulary, unfiltered.
func WordList() ([]string, error) {
	return ParseWordList(bytes.NewReader(wordsTxt))
}

// ParseWordList reads one word per line. Blank lines and '#' comments are
// skipped; everything else is returned trimmed, in file order.
func ParseWordList(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
