// Package wordlist loads word/answer pairs from text files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Pair is one question with its expected answer.
type Pair struct {
	Word   string
	Answer string
}

// LoadPairs reads one pair per line from the provided file path. Blank lines and
// lines starting with '#' are skipped.
func LoadPairs(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var pairs []Pair
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pair, ok := ParseLine(line)
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"word<TAB>answer\" or \"word = answer\"", lineNo)
		}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return pairs, nil
}
