package keywords

import (
	"regexp"
	"strings"
)

var wordRegex = regexp.MustCompile(`\b[a-z]+\b`)

// maxPhraseWords is the longest phrase, in words, that is looked up in the filter.
const maxPhraseWords = 3

// Tokens returns the distinct words of text plus every run of two and three consecutive words
// separated only by whitespace. Text is lowercased first; words are runs of ASCII letters.
// Words come first, then two-word phrases, then three-word phrases, each in order of appearance.
func Tokens(text string) []string {
	text = strings.ToLower(text)
	spans := wordRegex.FindAllStringIndex(text, -1)

	// joined[i] is true when word i and word i+1 are separated by whitespace only.
	joined := make([]bool, len(spans))
	for i := 0; i+1 < len(spans); i++ {
		gap := text[spans[i][1]:spans[i+1][0]]
		joined[i] = gap != "" && strings.TrimSpace(gap) == ""
	}

	seen := make(map[string]struct{}, len(spans)*maxPhraseWords)
	tokens := make([]string, 0, len(spans)*maxPhraseWords)
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	var b strings.Builder
	for size := 1; size <= maxPhraseWords; size++ {
	next:
		for i := 0; i+size <= len(spans); i++ {
			for j := i; j < i+size-1; j++ {
				if !joined[j] {
					continue next
				}
			}

			b.Reset()
			for j := i; j < i+size; j++ {
				if j > i {
					b.WriteByte(' ')
				}
				b.WriteString(text[spans[j][0]:spans[j][1]])
			}
			add(b.String())
		}
	}
	return tokens
}
