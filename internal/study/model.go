package study

import (
	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/commentary"
	"github.com/taiwoajasa245/verbum-dei-api/internal/search"
)

// ResultView is a search result decorated for display: the text split on the
// search term, plus the reader's highlight and note for that verse.
type ResultView struct {
	bible.SearchResult
	Segments  []bible.Segment      `json:"segments"`
	Highlight bible.HighlightColor `json:"highlight,omitempty"`
	HasNote   bool                 `json:"has_note"`
}

type SearchView struct {
	Query       search.Query `json:"query"`
	Results     []ResultView `json:"results"`
	IsSearching bool         `json:"is_searching"`
	FullChapter bool         `json:"full_chapter"`
	ReadingMode bool         `json:"reading_mode"`
	History     []string     `json:"history"`
}

// Panel is everything shown next to the selected verse.
type Panel struct {
	Verse      *bible.Verse         `json:"verse"`
	Commentary commentary.State     `json:"commentary"`
	Note       string               `json:"note"`
	Highlight  bible.HighlightColor `json:"highlight"`
}

type SessionToken struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	ExpiresAt string `json:"expires_at"`
}

type HighlightRequest struct {
	Verse bible.Verse `json:"verse"`
	Color string      `json:"color"`
}

type NoteRequest struct {
	Verse bible.Verse `json:"verse"`
	Text  string      `json:"text"`
}

type ReadingModeResponse struct {
	ReadingMode bool `json:"reading_mode"`
}

type BookGroupView struct {
	Group bible.BookGroup `json:"group"`
	Books []bible.Book    `json:"books"`
}

type TranslationView struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
