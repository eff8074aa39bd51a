package bible

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerseKeys(t *testing.T) {
	v := Verse{Book: "João", Chapter: 3, Verse: 16, Text: "Com efeito, de tal modo Deus amou o mundo"}

	assert.Equal(t, "João 3:16", v.Reference())
	assert.Equal(t, "João-3-16", v.ID())
	assert.True(t, v.Valid())
	assert.True(t, v.SameAs(Verse{Book: "João", Chapter: 3, Verse: 16, Text: "other translation"}))
	assert.False(t, v.SameAs(Verse{Book: "João", Chapter: 3, Verse: 17}))
	assert.False(t, Verse{Book: " ", Chapter: 1, Verse: 1}.Valid())
	assert.False(t, Verse{Book: "Salmos", Chapter: 0, Verse: 1}.Valid())
}

func TestNewSavedCommentary(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	v := Verse{Book: "Salmos", Chapter: 23, Verse: 1, Text: "O Senhor é o meu pastor"}
	c := CommentaryContent{Theological: "t", Patristic: "p", PatristicSource: "Santo Agostinho"}

	saved := NewSavedCommentary(v, c, at)

	assert.Equal(t, "Salmos-23-1-1714564800000", saved.ID)
	assert.Equal(t, "2024-05-01T12:00:00Z", saved.SavedAt)
	assert.Equal(t, c, saved.Content)
}

func TestParseHighlightColor(t *testing.T) {
	tests := []struct {
		in      string
		want    HighlightColor
		wantErr bool
	}{
		{"yellow", HighlightYellow, false},
		{" Pink ", HighlightPink, false},
		{"none", HighlightNone, false},
		{"", HighlightNone, false},
		{"purple", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHighlightColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupBook(t *testing.T) {
	require.Len(t, Books, 73)

	b, ok := LookupBook("joão")
	require.True(t, ok)
	assert.Equal(t, "João", b.Name)
	assert.Equal(t, GroupGospels, b.Group)

	// decomposed "ã" (a + combining tilde)
	b, ok = LookupBook("Joa\u0303o")
	require.True(t, ok)
	assert.Equal(t, "João", b.Name)

	b, ok = LookupBook("SABEDORIA")
	require.True(t, ok)
	assert.True(t, b.Deuterocanonical)

	_, ok = LookupBook("Enoque")
	assert.False(t, ok)
}

func TestResolveTranslation(t *testing.T) {
	key, name := ResolveTranslation("cnbb")
	assert.Equal(t, "CNBB", key)
	assert.Equal(t, "Bíblia CNBB (Português)", name)

	key, _ = ResolveTranslation("")
	assert.Equal(t, DefaultTranslation, key)

	key, _ = ResolveTranslation("KJV")
	assert.Equal(t, DefaultTranslation, key)

	assert.Len(t, TranslationKeys(), len(Translations))
}

func TestHighlightSegments(t *testing.T) {
	got := HighlightSegments("Deus amou o mundo. Deus é amor.", "deus")
	want := []Segment{
		{Text: "Deus", Match: true},
		{Text: " amou o mundo. "},
		{Text: "Deus", Match: true},
		{Text: " é amor."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HighlightSegments mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []Segment{{Text: "a (b) c"}}, HighlightSegments("a (b) c", "x"))
	assert.Equal(t, []Segment{{Text: "abc"}}, HighlightSegments("abc", "a"))
	assert.Equal(t, "a [(b)] c", Highlight("a (b) c", "(b)", "[", "]"))
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		in      string
		want    Verse
		wantErr bool
	}{
		{in: "João 3:16", want: Verse{Book: "João", Chapter: 3, Verse: 16}},
		{in: "  joão 3,16 ", want: Verse{Book: "João", Chapter: 3, Verse: 16}},
		{in: "1 João 4:9", want: Verse{Book: "1 João", Chapter: 4, Verse: 9}},
		{in: "Salmos 23.1", want: Verse{Book: "Salmos", Chapter: 23, Verse: 1}},
		{in: "Livro Perdido 1:1", want: Verse{Book: "Livro Perdido", Chapter: 1, Verse: 1}},
		{in: "João 3", wantErr: true},
		{in: "João 0:1", wantErr: true},
		{in: "3:16", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReference(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
