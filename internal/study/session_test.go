package study

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/commentary"
	"github.com/taiwoajasa245/verbum-dei-api/internal/library"
	"github.com/taiwoajasa245/verbum-dei-api/internal/oracle"
	"github.com/taiwoajasa245/verbum-dei-api/internal/search"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage"
)

func TestSearchRejectedQueryChangesNothing(t *testing.T) {
	o := newStubOracle(john316)
	s, store := newTestSession(t, o)
	ctx := context.Background()

	_, err := s.Search(ctx, search.Query{Term: "  a "})
	assert.ErrorIs(t, err, ErrRejectedQuery)
	assert.Zero(t, o.searchCount())
	assert.Empty(t, s.History())

	_, err = store.Get(ctx, library.KeyHistory)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSearchRecordsHistoryAndDecoratesResults(t *testing.T) {
	o := newStubOracle(john316, rom58)
	s, _ := newTestSession(t, o)
	ctx := context.Background()

	require.NoError(t, s.SetHighlight(ctx, rom58, bible.HighlightYellow))
	require.NoError(t, s.SaveNote(ctx, john316, "ler com a família"))

	view, err := s.Search(ctx, search.Query{Term: "  amou  "})
	require.NoError(t, err)

	assert.Equal(t, []string{"amou"}, view.History)
	assert.Equal(t, "amou", view.Query.Term)
	assert.False(t, view.IsSearching)
	assert.False(t, view.FullChapter)
	require.Len(t, view.Results, 2)

	first := view.Results[0]
	assert.Equal(t, john316, first.Verse)
	assert.True(t, first.HasNote)
	assert.Equal(t, []bible.Segment{
		{Text: "Com efeito, de tal modo Deus "},
		{Text: "amou", Match: true},
		{Text: " o mundo, que lhe deu seu Filho único"},
	}, first.Segments)
	assert.Equal(t, bible.HighlightYellow, view.Results[1].Highlight)
}

func TestFailedSearchStillRecordsHistory(t *testing.T) {
	s, store := newTestSession(t, oracle.Unconfigured{})
	ctx := context.Background()

	_, err := s.Search(ctx, search.Query{Term: "caridade"})
	require.NoError(t, err)
	view, err := s.Search(ctx, search.Query{Term: " Fé "})
	require.NoError(t, err)
	assert.Empty(t, view.Results)
	assert.Equal(t, []string{"Fé", "caridade"}, view.History)

	view, err = s.Search(ctx, search.Query{Term: "fé"})
	require.NoError(t, err)
	assert.Empty(t, view.Results)
	assert.Equal(t, []string{"fé", "caridade"}, view.History)

	persisted, err := storage.Load[[]string](ctx, store, library.KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, []string{"fé", "caridade"}, persisted)
}

func TestSearchResetsCommentary(t *testing.T) {
	o := newStubOracle(john316)
	s, _ := newTestSession(t, o)
	ctx := context.Background()

	_, err := s.Select(john316)
	require.NoError(t, err)
	s.Wait()
	require.NotNil(t, s.Panel().Commentary.Content)

	_, err = s.Search(ctx, search.Query{Term: "caridade"})
	require.NoError(t, err)

	p := s.Panel()
	assert.Nil(t, p.Verse)
	assert.Equal(t, commentary.State{}, p.Commentary)
}

func TestFullChapterTurnsOnReadingMode(t *testing.T) {
	chapter := []bible.Verse{
		{Book: "Salmos", Chapter: 23, Verse: 1, Text: "O Senhor é meu pastor"},
		{Book: "Salmos", Chapter: 23, Verse: 2, Text: "Em verdes prados"},
	}
	o := newStubOracle(chapter...)
	s, _ := newTestSession(t, o)

	view, err := s.Search(context.Background(), search.Query{Term: "23", Book: "Salmos"})
	require.NoError(t, err)
	assert.True(t, view.FullChapter)
	assert.True(t, view.ReadingMode)
	assert.Equal(t, "Salmos 23", o.searches[0].Query)

	on, err := s.ToggleReadingMode()
	require.NoError(t, err)
	assert.False(t, on)
}

func TestReadingModeNeedsResults(t *testing.T) {
	s, _ := newTestSession(t, newStubOracle())

	_, err := s.ToggleReadingMode()
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = s.Search(context.Background(), search.Query{Term: "nada"})
	require.NoError(t, err)
	_, err = s.ToggleReadingMode()
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSelectBuildsPanel(t *testing.T) {
	s, _ := newTestSession(t, newStubOracle())
	ctx := context.Background()
	require.NoError(t, s.SaveNote(ctx, john316, "minha nota"))

	p, err := s.Select(john316)
	require.NoError(t, err)
	require.NotNil(t, p.Verse)
	assert.Equal(t, john316, *p.Verse)
	assert.Equal(t, "minha nota", p.Note)
	assert.Equal(t, bible.HighlightNone, p.Highlight)
	assert.True(t, p.Commentary.IsLoading || p.Commentary.Content != nil)

	s.Wait()
	p, err = s.Select(john316)
	require.NoError(t, err)
	assert.Nil(t, p.Verse)
	assert.Equal(t, commentary.State{}, p.Commentary)

	_, err = s.Select(bible.Verse{Book: "João"})
	assert.ErrorIs(t, err, ErrInvalidVerse)
}

func TestSaveCommentary(t *testing.T) {
	o := newStubOracle()
	s, _ := newTestSession(t, o)
	ctx := context.Background()

	_, err := s.SaveCommentary(ctx)
	assert.ErrorIs(t, err, ErrNothingToSave)

	_, err = s.Select(john316)
	require.NoError(t, err)
	s.Wait()

	item, err := s.SaveCommentary(ctx)
	require.NoError(t, err)
	assert.Equal(t, john316, item.Verse)
	assert.Equal(t, "O amor de Deus em João 3:16", item.Content.Theological)
	assert.Len(t, s.Saved(), 1)

	require.NoError(t, s.DeleteSaved(ctx, item.ID))
	assert.Empty(t, s.Saved())
}

func TestSaveCommentaryAfterFailure(t *testing.T) {
	o := newStubOracle()
	o.commentaryErr = errOffline
	s, _ := newTestSession(t, o)

	p, err := s.Select(rom58)
	require.NoError(t, err)
	require.NotNil(t, p.Verse)
	s.Wait()

	assert.Equal(t, commentary.ErrorMessage, s.Panel().Commentary.Error)
	_, err = s.SaveCommentary(context.Background())
	assert.ErrorIs(t, err, ErrNothingToSave)
}

func TestDeselectKeepsCommentary(t *testing.T) {
	o := newStubOracle()
	s, _ := newTestSession(t, o)

	_, err := s.Select(john316)
	require.NoError(t, err)
	s.Wait()
	s.Deselect()

	p := s.Panel()
	assert.Nil(t, p.Verse)
	assert.NotNil(t, p.Commentary.Content)

	_, err = s.Select(john316)
	require.NoError(t, err)
	s.Wait()
	assert.Equal(t, 1, o.commentaries)
}
