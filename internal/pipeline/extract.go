package pipeline

import (
	"strings"
	"unicode/utf8"
)

// minLineRunes is the length a line must exceed to count as content.
const minLineRunes = 10

// bulletCutset is stripped from both ends of each answer line.
const bulletCutset = "- •"

// ExtractLines splits a free-text answer into content lines. Each line is
// trimmed, stripped of leading and trailing bullet marks, and kept when it
// is longer than minLineRunes. At most limit lines are returned in their
// original order.
func ExtractLines(answer string, limit int) []string {
	out := []string{}
	if limit <= 0 {
		return out
	}
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), bulletCutset))
		if utf8.RuneCountInString(line) <= minLineRunes {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}

// truncateRunes cuts s to at most n runes, appending suffix when cut.
func truncateRunes(s string, n int, suffix string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + suffix
}
