// Package library keeps a reader's persisted study records: search history,
// saved commentaries, highlights and notes. Records are loaded once when the
// library is opened and written back immediately after every change.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage"
)

const (
	KeyHistory    = "verbumDeiHistory"
	KeySaved      = "verbumDeiSaved"
	KeyHighlights = "verbumDeiHighlights"
	KeyNotes      = "verbumDeiNotes"
)

// MaxHistory caps the number of remembered searches.
const MaxHistory = 7

var ErrSavedNotFound = errors.New("saved commentary not found")

type Library struct {
	mu     sync.RWMutex
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time

	history    []string
	saved      []bible.SavedCommentary
	highlights map[string]bible.HighlightColor
	notes      map[string]string
}

// Open reads the four records from store. Missing or malformed records start empty;
// malformed ones are logged and otherwise ignored.
func Open(ctx context.Context, store storage.Store, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Library{
		store:  store,
		logger: logger.Named("library"),
		now:    time.Now,
	}

	l.history = load[[]string](ctx, l, KeyHistory)
	l.saved = load[[]bible.SavedCommentary](ctx, l, KeySaved)
	l.highlights = load[map[string]bible.HighlightColor](ctx, l, KeyHighlights)
	l.notes = load[map[string]string](ctx, l, KeyNotes)

	if l.highlights == nil {
		l.highlights = make(map[string]bible.HighlightColor)
	}
	if l.notes == nil {
		l.notes = make(map[string]string)
	}
	return l
}

func load[T any](ctx context.Context, l *Library, key string) T {
	v, err := storage.Load[T](ctx, l.store, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.Warn("discarding stored record", zap.String("key", key), zap.Error(err))
		}
		var zero T
		return zero
	}
	return v
}

// History returns the remembered searches, most recent first.
func (l *Library) History() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string{}, l.history...)
}

// RecordSearch moves the trimmed term to the front of the history, dropping any
// earlier entry that matches it case-insensitively, and keeps at most MaxHistory.
func (l *Library) RecordSearch(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return l.History(), nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := bible.Fold(term)
	next := make([]string, 0, MaxHistory)
	next = append(next, term)
	for _, h := range l.history {
		if len(next) == MaxHistory {
			break
		}
		if bible.Fold(h) == key {
			continue
		}
		next = append(next, h)
	}
	l.history = next

	out := append([]string{}, next...)
	return out, storage.Save(ctx, l.store, KeyHistory, next)
}

func (l *Library) ClearHistory(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = nil
	return storage.Clear(ctx, l.store, KeyHistory)
}

// Saved returns the saved commentaries in the order they were saved.
func (l *Library) Saved() []bible.SavedCommentary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]bible.SavedCommentary{}, l.saved...)
}

func (l *Library) SaveCommentary(ctx context.Context, verse bible.Verse, content bible.CommentaryContent) (bible.SavedCommentary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item := bible.NewSavedCommentary(verse, content, l.now())
	item.ID = l.uniqueSavedID(item.ID)
	l.saved = append(l.saved, item)
	return item, storage.Save(ctx, l.store, KeySaved, l.saved)
}

// uniqueSavedID suffixes id with -2, -3, ... while it is taken. The caller holds l.mu.
func (l *Library) uniqueSavedID(id string) string {
	taken := make(map[string]bool, len(l.saved))
	for _, item := range l.saved {
		taken[item.ID] = true
	}
	candidate := id
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	return candidate
}

// DeleteSaved removes exactly the entry with the given id.
func (l *Library) DeleteSaved(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, item := range l.saved {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrSavedNotFound
	}

	next := make([]bible.SavedCommentary, 0, len(l.saved)-1)
	next = append(next, l.saved[:idx]...)
	next = append(next, l.saved[idx+1:]...)
	l.saved = next
	return storage.Save(ctx, l.store, KeySaved, l.saved)
}

func (l *Library) ClearSaved(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.saved = nil
	return storage.Clear(ctx, l.store, KeySaved)
}

func (l *Library) Highlights() map[string]bible.HighlightColor {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]bible.HighlightColor, len(l.highlights))
	for k, v := range l.highlights {
		out[k] = v
	}
	return out
}

func (l *Library) Highlight(verse bible.Verse) (bible.HighlightColor, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.highlights[verse.ID()]
	return c, ok
}

// SetHighlight colors a verse; HighlightNone removes the key.
func (l *Library) SetHighlight(ctx context.Context, verse bible.Verse, color bible.HighlightColor) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if color == bible.HighlightNone || color == "" {
		delete(l.highlights, verse.ID())
	} else {
		l.highlights[verse.ID()] = color
	}
	return storage.Save(ctx, l.store, KeyHighlights, l.highlights)
}

func (l *Library) Notes() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]string, len(l.notes))
	for k, v := range l.notes {
		out[k] = v
	}
	return out
}

func (l *Library) Note(verse bible.Verse) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.notes[verse.ID()]
}

// SaveNote stores text for the verse. Blank text deletes the note.
func (l *Library) SaveNote(ctx context.Context, verse bible.Verse, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		delete(l.notes, verse.ID())
	} else {
		l.notes[verse.ID()] = text
	}
	return storage.Save(ctx, l.store, KeyNotes, l.notes)
}
