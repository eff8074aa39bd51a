package bible

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Segment is a run of verse text, flagged when it matches the search query.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match,omitempty"`
}

// HighlightSegments splits text around case-insensitive occurrences of query.
// Queries shorter than two characters are not highlighted.
func HighlightSegments(text, query string) []Segment {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < 2 {
		return []Segment{{Text: text}}
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return []Segment{{Text: text}}
	}

	var out []Segment
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: text[last:loc[0]]})
		}
		out = append(out, Segment{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) || len(out) == 0 {
		out = append(out, Segment{Text: text[last:]})
	}
	return out
}

// Highlight renders the matches of query in text between open and close markers.
func Highlight(text, query, open, close string) string {
	var b strings.Builder
	for _, seg := range HighlightSegments(text, query) {
		if seg.Match {
			b.WriteString(open)
			b.WriteString(seg.Text)
			b.WriteString(close)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
