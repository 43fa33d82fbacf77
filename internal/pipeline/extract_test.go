package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		answer string
		limit  int
		want   []string
	}{
		{
			name:   "bullets_stripped",
			answer: "- Battery drains quickly\n• Screen scratches easily\n  -  Charger sold separately  ",
			limit:  5,
			want:   []string{"Battery drains quickly", "Screen scratches easily", "Charger sold separately"},
		},
		{
			name:   "short_and_blank_dropped",
			answer: "\n\nok\n- tiny\nThis line is long enough\n",
			limit:  5,
			want:   []string{"This line is long enough"},
		},
		{
			name:   "cap_keeps_order",
			answer: "first long line here\nsecond long line here\nthird long line here",
			limit:  2,
			want:   []string{"first long line here", "second long line here"},
		},
		{
			name:   "exactly_ten_dropped_eleven_kept",
			answer: "abcdefghij\n- abcdefghijk",
			limit:  5,
			want:   []string{"abcdefghijk"},
		},
		{
			name:   "multibyte_counted_as_runes",
			answer: "• café crème brûlée\n• ééééééééé",
			limit:  5,
			want:   []string{"café crème brûlée"},
		},
		{
			name:   "crlf",
			answer: "line with windows ending\r\nanother windows ending\r\n",
			limit:  5,
			want:   []string{"line with windows ending", "another windows ending"},
		},
		{
			name:   "empty",
			answer: "",
			limit:  5,
			want:   []string{},
		},
		{
			name:   "zero_limit",
			answer: "a perfectly fine line",
			limit:  0,
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractLines(tt.answer, tt.limit))
		})
	}
}

func TestExtractLines_Idempotent(t *testing.T) {
	t.Parallel()

	answer := "Intro paragraph that is long\n- Point one is here\n• Point two is here\n-- Point three is here --\nshort"

	once := ExtractLines(answer, 10)
	twice := ExtractLines(strings.Join(once, "\n"), 10)

	assert.Equal(t, once, twice)

	bulleted := make([]string, len(once))
	for i, l := range once {
		bulleted[i] = "- " + l
	}
	assert.Equal(t, once, ExtractLines(strings.Join(bulleted, "\n"), 10))
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncateRunes("abc", 5, "..."))
	assert.Equal(t, "abcde", truncateRunes("abcde", 5, "..."))
	assert.Equal(t, "abcde...", truncateRunes("abcdef", 5, "..."))
	assert.Equal(t, "éé...", truncateRunes("ééé", 2, "..."))
}
