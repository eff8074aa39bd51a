// Package study ties search, commentary and the reader's library into one
// study session, and serves sessions over HTTP.
package study

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/commentary"
	"github.com/taiwoajasa245/verbum-dei-api/internal/library"
	"github.com/taiwoajasa245/verbum-dei-api/internal/search"
)

var (
	ErrRejectedQuery = errors.New("search term must have at least 2 characters")
	ErrInvalidVerse  = errors.New("verse needs a book, chapter and verse")
	ErrNothingToSave = errors.New("no loaded commentary for the selected verse")
	ErrNoResults     = errors.New("reading mode needs search results")
)

// Session is one reader's study state. It is safe for concurrent use.
type Session struct {
	ID string

	library    *library.Library
	searcher   *search.Service
	commentary *commentary.Orchestrator
	logger     *zap.Logger
	now        func() time.Time

	mu          sync.Mutex
	query       search.Query
	results     []bible.SearchResult
	searching   bool
	searchGen   uint64
	readingMode bool
	lastSeen    time.Time
	// active counts requests currently holding the session.
	active int
}

func NewSession(id string, lib *library.Library, searcher *search.Service, orc *commentary.Orchestrator, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		ID:         id,
		library:    lib,
		searcher:   searcher,
		commentary: orc,
		logger:     logger.Named("session").With(zap.String("session_id", id)),
		now:        time.Now,
		lastSeen:   time.Now(),
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.now()
	s.mu.Unlock()
}

func (s *Session) begin() {
	s.mu.Lock()
	s.active++
	s.lastSeen = s.now()
	s.mu.Unlock()
}

func (s *Session) end() {
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
}

// busy reports whether a request holds the session or a commentary fetch for
// it is still running.
func (s *Session) busy() bool {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	return active > 0 || s.commentary.Pending() > 0
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Search runs q and replaces the current results. A rejected query leaves the
// session untouched and returns ErrRejectedQuery. An accepted one clears the
// results and the commentary, records the term in the history, and switches on
// reading mode when the answer is a whole chapter.
func (s *Session) Search(ctx context.Context, q search.Query) (SearchView, error) {
	if !q.Accepted() {
		return s.View(), ErrRejectedQuery
	}
	q.Term = strings.TrimSpace(q.Term)
	q.Book = strings.TrimSpace(q.Book)

	s.mu.Lock()
	s.searchGen++
	gen := s.searchGen
	s.query = q
	s.results = nil
	s.searching = true
	s.lastSeen = s.now()
	s.mu.Unlock()

	s.commentary.Reset()
	if _, err := s.library.RecordSearch(ctx, q.Term); err != nil {
		s.logger.Warn("failed to persist search history", zap.Error(err))
	}

	results := s.searcher.Search(ctx, q)

	s.mu.Lock()
	if gen == s.searchGen {
		s.results = results
		s.searching = false
		if search.IsFullChapter(results) {
			s.readingMode = true
		}
	}
	s.mu.Unlock()

	return s.View(), nil
}

func (s *Session) View() SearchView {
	s.mu.Lock()
	q := s.query
	results := s.results
	view := SearchView{
		Query:       q,
		IsSearching: s.searching,
		FullChapter: search.IsFullChapter(results),
		ReadingMode: s.readingMode,
	}
	s.mu.Unlock()

	highlights := s.library.Highlights()
	notes := s.library.Notes()
	view.Results = make([]ResultView, 0, len(results))
	for _, r := range results {
		id := r.Verse.ID()
		_, hasNote := notes[id]
		view.Results = append(view.Results, ResultView{
			SearchResult: r,
			Segments:     bible.HighlightSegments(r.Verse.Text, q.Term),
			Highlight:    highlights[id],
			HasNote:      hasNote,
		})
	}
	view.History = s.library.History()
	return view
}

// Select toggles the selection of verse and returns the panel for it.
func (s *Session) Select(verse bible.Verse) (Panel, error) {
	if !verse.Valid() {
		return Panel{}, ErrInvalidVerse
	}
	s.touch()
	s.commentary.Select(verse)
	return s.Panel(), nil
}

// Deselect closes the panel but keeps the loaded commentary for a later reselect.
func (s *Session) Deselect() {
	s.touch()
	s.commentary.Deselect()
}

func (s *Session) Panel() Panel {
	p := Panel{Commentary: s.commentary.Snapshot()}
	verse, ok := s.commentary.Selected()
	if !ok {
		return p
	}
	p.Verse = &verse
	p.Note = s.library.Note(verse)
	if c, ok := s.library.Highlight(verse); ok {
		p.Highlight = c
	} else {
		p.Highlight = bible.HighlightNone
	}
	return p
}

// Wait blocks until the commentary fetches issued so far have finished.
func (s *Session) Wait() {
	s.commentary.Wait()
}

// SaveCommentary keeps the loaded commentary of the selected verse.
func (s *Session) SaveCommentary(ctx context.Context) (bible.SavedCommentary, error) {
	s.touch()
	verse, ok := s.commentary.Selected()
	if !ok {
		return bible.SavedCommentary{}, ErrNothingToSave
	}
	st := s.commentary.Snapshot()
	if st.Content == nil || st.ForReference != verse.Reference() {
		return bible.SavedCommentary{}, ErrNothingToSave
	}
	return s.library.SaveCommentary(ctx, verse, *st.Content)
}

func (s *Session) ToggleReadingMode() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	if len(s.results) == 0 || s.searching {
		return s.readingMode, ErrNoResults
	}
	s.readingMode = !s.readingMode
	return s.readingMode, nil
}

func (s *Session) History() []string {
	return s.library.History()
}

func (s *Session) ClearHistory(ctx context.Context) error {
	s.touch()
	return s.library.ClearHistory(ctx)
}

func (s *Session) Saved() []bible.SavedCommentary {
	return s.library.Saved()
}

func (s *Session) DeleteSaved(ctx context.Context, id string) error {
	s.touch()
	return s.library.DeleteSaved(ctx, id)
}

func (s *Session) ClearSaved(ctx context.Context) error {
	s.touch()
	return s.library.ClearSaved(ctx)
}

func (s *Session) Highlights() map[string]bible.HighlightColor {
	return s.library.Highlights()
}

func (s *Session) SetHighlight(ctx context.Context, verse bible.Verse, color bible.HighlightColor) error {
	if !verse.Valid() {
		return ErrInvalidVerse
	}
	s.touch()
	return s.library.SetHighlight(ctx, verse, color)
}

func (s *Session) Notes() map[string]string {
	return s.library.Notes()
}

func (s *Session) SaveNote(ctx context.Context, verse bible.Verse, text string) error {
	if !verse.Valid() {
		return ErrInvalidVerse
	}
	s.touch()
	return s.library.SaveNote(ctx, verse, text)
}
