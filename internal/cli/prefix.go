// Package cli provides CLI infrastructure for cb.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// MatchChoice resolves menu input to one of choices.
// The input may be a 1-based menu number, a full choice name, or a unique
// prefix of one (case-insensitive).
func MatchChoice(input string, choices []string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", fmt.Errorf("no choice given")
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(choices) {
			return "", fmt.Errorf("choice %d out of range 1-%d", n, len(choices))
		}
		return choices[n-1], nil
	}

	// Exact match wins over prefix matches
	for _, c := range choices {
		if strings.ToLower(c) == input {
			return c, nil
		}
	}

	var matches []string
	for _, c := range choices {
		if strings.HasPrefix(strings.ToLower(c), input) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown choice %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous choice %q matches: %s", input, strings.Join(matches, ", "))
	}
}
