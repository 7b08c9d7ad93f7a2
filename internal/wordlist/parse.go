package wordlist

import "strings"

var separators = []string{"\t", " = ", "="}

// ParseLine splits a line on the first known separator. Both sides must be non-empty.
func ParseLine(line string) (Pair, bool) {
	for _, sep := range separators {
		word, answer, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		word = strings.TrimSpace(word)
		answer = strings.TrimSpace(answer)
		if word == "" || answer == "" {
			return Pair{}, false
		}
		return Pair{Word: word, Answer: answer}, true
	}
	return Pair{}, false
}
