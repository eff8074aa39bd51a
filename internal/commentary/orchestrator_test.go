package commentary

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/oracle"
)

func TestMain(m *testing.M) {
	// genai pulls in opencensus, whose view worker starts in init and never stops
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

var (
	verseA = bible.Verse{Book: "João", Chapter: 3, Verse: 16, Text: "Com efeito, de tal modo Deus amou o mundo..."}
	verseB = bible.Verse{Book: "Isaías", Chapter: 7, Verse: 14, Text: "...uma virgem conceberá e dará à luz um filho..."}
)

// fakeOracle answers from per-reference tables. Calls for a reference listed in
// gates block until that gate is closed or the call context ends.
type fakeOracle struct {
	oracle.Unconfigured

	mu              sync.Mutex
	commentaryCalls map[string]int
	crossRefCalls   map[string]int

	commentaryErr error
	crossRefErr   error
	gates         map[string]chan struct{}
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{
		commentaryCalls: make(map[string]int),
		crossRefCalls:   make(map[string]int),
		gates:           make(map[string]chan struct{}),
	}
}

func (f *fakeOracle) gate(ref string) chan struct{} {
	ch := make(chan struct{})
	f.gates[ref] = ch
	return ch
}

func (f *fakeOracle) wait(ctx context.Context, ref string) error {
	f.mu.Lock()
	ch := f.gates[ref]
	f.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeOracle) GenerateCommentary(ctx context.Context, v bible.Verse) (bible.CommentaryContent, error) {
	f.mu.Lock()
	f.commentaryCalls[v.Reference()]++
	f.mu.Unlock()
	if err := f.wait(ctx, v.Reference()); err != nil {
		return bible.CommentaryContent{}, err
	}
	if f.commentaryErr != nil {
		return bible.CommentaryContent{}, f.commentaryErr
	}
	return bible.CommentaryContent{
		Theological:     "comentário sobre " + v.Reference(),
		Patristic:       "citação",
		PatristicSource: "Santo Agostinho",
	}, nil
}

func (f *fakeOracle) GenerateCrossReferences(ctx context.Context, v bible.Verse) ([]bible.CrossReference, error) {
	f.mu.Lock()
	f.crossRefCalls[v.Reference()]++
	f.mu.Unlock()
	if err := f.wait(ctx, v.Reference()); err != nil {
		return nil, err
	}
	if f.crossRefErr != nil {
		return nil, f.crossRefErr
	}
	return []bible.CrossReference{
		{Reference: "Romanos 5,8", Text: "...", Reason: "ligada a " + v.Reference()},
		{Reference: "1 João 4,9", Text: "...", Reason: "ligada a " + v.Reference()},
		{Reference: "Gênesis 22,2", Text: "...", Reason: "ligada a " + v.Reference()},
	}, nil
}

func (f *fakeOracle) calls(ref string) (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commentaryCalls[ref], f.crossRefCalls[ref]
}

func TestSelectStartsBothFetches(t *testing.T) {
	f := newFakeOracle()
	release := f.gate(verseA.Reference())
	o := New(f)

	st := o.Select(verseA)
	assert.True(t, st.IsLoading)
	assert.True(t, st.IsCrossRefLoading)
	assert.Nil(t, st.Content)
	assert.Nil(t, st.CrossReferences)
	assert.Empty(t, st.Error)
	assert.Equal(t, "João 3:16", st.ForReference)

	close(release)
	o.Wait()

	st = o.Snapshot()
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsCrossRefLoading)
	require.NotNil(t, st.Content)
	assert.Equal(t, "comentário sobre João 3:16", st.Content.Theological)
	assert.Len(t, st.CrossReferences, 3)

	selected, ok := o.Selected()
	require.True(t, ok)
	assert.Equal(t, verseA, selected)
}

func TestSelectSameVerseTogglesOff(t *testing.T) {
	f := newFakeOracle()
	o := New(f)

	o.Select(verseA)
	o.Wait()
	st := o.Select(verseA)

	assert.Equal(t, State{}, st)
	assert.Equal(t, State{}, o.Snapshot())
	_, ok := o.Selected()
	assert.False(t, ok)
}

func TestToggleOffVoidsInFlightFetches(t *testing.T) {
	f := newFakeOracle()
	release := f.gate(verseA.Reference())
	o := New(f)

	o.Select(verseA)
	o.Select(verseA)
	close(release)
	o.Wait()

	assert.Equal(t, State{}, o.Snapshot())
}

func TestReselectAfterDeselectReusesCommentary(t *testing.T) {
	f := newFakeOracle()
	o := New(f)

	o.Select(verseA)
	o.Wait()
	o.Deselect()
	st := o.Select(verseA)
	o.Wait()

	require.NotNil(t, st.Content)
	c, x := f.calls(verseA.Reference())
	assert.Equal(t, 1, c)
	assert.Equal(t, 1, x)
}

func TestReselectWhileLoadingDoesNotRefetch(t *testing.T) {
	f := newFakeOracle()
	release := f.gate(verseA.Reference())
	o := New(f)

	o.Select(verseA)
	o.Deselect()
	st := o.Select(verseA)
	assert.True(t, st.IsLoading)

	close(release)
	o.Wait()
	c, x := f.calls(verseA.Reference())
	assert.Equal(t, 1, c)
	assert.Equal(t, 1, x)
}

func TestCommentaryFailureKeepsCrossReferences(t *testing.T) {
	f := newFakeOracle()
	f.commentaryErr = &oracle.Error{Op: "commentary", Kind: oracle.KindTransport, Err: errors.New("offline")}
	o := New(f)

	o.Select(verseA)
	o.Wait()

	st := o.Snapshot()
	assert.False(t, st.IsLoading)
	assert.Nil(t, st.Content)
	assert.Equal(t, ErrorMessage, st.Error)
	assert.False(t, st.IsCrossRefLoading)
	assert.Len(t, st.CrossReferences, 3)
}

func TestRetryAfterCommentaryFailure(t *testing.T) {
	f := newFakeOracle()
	f.commentaryErr = errors.New("offline")
	o := New(f)

	o.Select(verseA)
	o.Wait()
	o.Deselect()
	f.mu.Lock()
	f.commentaryErr = nil
	f.mu.Unlock()
	o.Select(verseA)
	o.Wait()

	st := o.Snapshot()
	assert.Empty(t, st.Error)
	require.NotNil(t, st.Content)
	c, _ := f.calls(verseA.Reference())
	assert.Equal(t, 2, c)
}

func TestCrossReferenceFailureIsSilent(t *testing.T) {
	f := newFakeOracle()
	f.crossRefErr = errors.New("quota")
	o := New(f)

	o.Select(verseA)
	o.Wait()

	st := o.Snapshot()
	assert.Empty(t, st.Error)
	require.NotNil(t, st.Content)
	assert.NotNil(t, st.CrossReferences)
	assert.Empty(t, st.CrossReferences)
	assert.False(t, st.IsCrossRefLoading)
}

func TestLateResultsForPreviousSelectionAreDropped(t *testing.T) {
	f := newFakeOracle()
	releaseA := f.gate(verseA.Reference())
	o := New(f)

	o.Select(verseA)
	o.Select(verseB)

	require.Eventually(t, func() bool {
		st := o.Snapshot()
		return !st.IsLoading && !st.IsCrossRefLoading
	}, time.Second, 5*time.Millisecond)

	close(releaseA)
	o.Wait()

	st := o.Snapshot()
	assert.Equal(t, "Isaías 7:14", st.ForReference)
	require.NotNil(t, st.Content)
	assert.Equal(t, "comentário sobre Isaías 7:14", st.Content.Theological)
	for _, ref := range st.CrossReferences {
		assert.Equal(t, "ligada a Isaías 7:14", ref.Reason)
	}
}

func TestResetVoidsEverything(t *testing.T) {
	f := newFakeOracle()
	release := f.gate(verseA.Reference())
	o := New(f)

	o.Select(verseA)
	o.Reset()
	close(release)
	o.Wait()

	assert.Equal(t, State{}, o.Snapshot())
	_, ok := o.Selected()
	assert.False(t, ok)
}

func TestTimeoutSurfacesAsFailure(t *testing.T) {
	f := newFakeOracle()
	f.gate(verseA.Reference())
	o := New(f, WithTimeout(20*time.Millisecond))

	o.Select(verseA)
	o.Wait()

	st := o.Snapshot()
	assert.Equal(t, ErrorMessage, st.Error)
	assert.Empty(t, st.CrossReferences)
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsCrossRefLoading)
}

func TestSnapshotIsACopy(t *testing.T) {
	f := newFakeOracle()
	o := New(f)
	o.Select(verseA)
	o.Wait()

	st := o.Snapshot()
	st.CrossReferences[0].Reference = "mutated"
	st.Content.Theological = "mutated"

	again := o.Snapshot()
	assert.Equal(t, "Romanos 5,8", again.CrossReferences[0].Reference)
	assert.NotEqual(t, "mutated", again.Content.Theological)
}

func TestPendingCountsUnfinishedFetches(t *testing.T) {
	f := newFakeOracle()
	release := f.gate(verseA.Reference())
	o := New(f)
	assert.Zero(t, o.Pending())

	o.Select(verseA)
	assert.Equal(t, 2, o.Pending())

	o.Reset()
	assert.Equal(t, 2, o.Pending(), "voided fetches still run")

	close(release)
	o.Wait()
	assert.Zero(t, o.Pending())
}
