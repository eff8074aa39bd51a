package bible

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Reference is the human-readable key used to tie commentary to a verse,
// e.g. "João 3:16".
func (v Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

// ID is the storage key for highlights and notes, e.g. "João-3-16".
func (v Verse) ID() string {
	return fmt.Sprintf("%s-%d-%d", v.Book, v.Chapter, v.Verse)
}

// SameAs reports whether both verses point at the same book, chapter and verse.
// Text is ignored: two translations of one verse are the same verse.
func (v Verse) SameAs(other Verse) bool {
	return v.Book == other.Book && v.Chapter == other.Chapter && v.Verse == other.Verse
}

// Valid reports whether the verse carries a usable identity.
func (v Verse) Valid() bool {
	return strings.TrimSpace(v.Book) != "" && v.Chapter > 0 && v.Verse > 0
}

var referencePattern = regexp.MustCompile(`^(.+?)\s+(\d+)\s*[:,.]\s*(\d+)$`)

// ParseReference reads "Book C:V" (a comma or dot also separates chapter and
// verse). A book found in the canon is returned under its canonical name.
func ParseReference(s string) (Verse, error) {
	m := referencePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Verse{}, fmt.Errorf("invalid reference %q: want \"Book chapter:verse\"", s)
	}
	chapter, _ := strconv.Atoi(m[2])
	verse, _ := strconv.Atoi(m[3])
	v := Verse{Book: strings.TrimSpace(m[1]), Chapter: chapter, Verse: verse}
	if b, ok := LookupBook(v.Book); ok {
		v.Book = b.Name
	}
	if !v.Valid() {
		return Verse{}, fmt.Errorf("invalid reference %q", s)
	}
	return v, nil
}

type SearchResult struct {
	Verse     Verse   `json:"verse"`
	Relevance float64 `json:"relevance"`
	IsPrimary bool    `json:"is_primary,omitempty"`
}

type CommentaryContent struct {
	Theological     string `json:"theological"`
	Patristic       string `json:"patristic"`
	PatristicSource string `json:"patristic_source"`
	Jerusalem       string `json:"jerusalem,omitempty"`
}

type CrossReference struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
	Reason    string `json:"reason"`
}

type SavedCommentary struct {
	ID      string            `json:"id"`
	Verse   Verse             `json:"verse"`
	Content CommentaryContent `json:"content"`
	SavedAt string            `json:"saved_at"`
}

// NewSavedCommentary stamps a commentary with an id derived from the verse
// and the save time.
func NewSavedCommentary(verse Verse, content CommentaryContent, at time.Time) SavedCommentary {
	at = at.UTC()
	return SavedCommentary{
		ID:      fmt.Sprintf("%s-%d", verse.ID(), at.UnixMilli()),
		Verse:   verse,
		Content: content,
		SavedAt: at.Format(time.RFC3339),
	}
}

type HighlightColor string

const (
	HighlightNone   HighlightColor = "none"
	HighlightYellow HighlightColor = "yellow"
	HighlightGreen  HighlightColor = "green"
	HighlightBlue   HighlightColor = "blue"
	HighlightPink   HighlightColor = "pink"
)

var HighlightColors = []HighlightColor{HighlightYellow, HighlightGreen, HighlightBlue, HighlightPink}

// ParseHighlightColor accepts one of the palette colors or "none" (and the empty string,
// which also means none).
func ParseHighlightColor(s string) (HighlightColor, error) {
	c := HighlightColor(strings.ToLower(strings.TrimSpace(s)))
	if c == "" || c == HighlightNone {
		return HighlightNone, nil
	}
	for _, known := range HighlightColors {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown highlight color %q", s)
}
