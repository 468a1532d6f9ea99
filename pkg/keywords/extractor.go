package keywords

import "strings"

// stopWords are filler words that make useless image-search terms.
var stopWords = map[string]bool{
	"today": true, "went": true, "want": true, "just": true,
	"like": true, "with": true, "this": true, "that": true,
	"the": true, "and": true, "for": true, "from": true,
}

const maxKeywords = 2

// Extract derives up to two lowercase alphabetic search keywords from free
// text, in original order. Characters outside [a-z ] are stripped rather
// than replaced, so "don't" becomes "dont" and "robot-arm" becomes
// "robotarm"; that merging is accepted lossy behavior.
func Extract(text string) []string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}

	var out []string
	for _, word := range strings.Split(b.String(), " ") {
		if len(word) > 2 && !stopWords[word] {
			out = append(out, word)
			if len(out) == maxKeywords {
				break
			}
		}
	}
	return out
}

// Query returns the comma-joined keyword string used in stock-image URLs.
// Text with no surviving tokens yields "", which downstream becomes an
// unfiltered stock query; that default is deliberate.
func Query(text string) string {
	return strings.Join(Extract(text), ",")
}
