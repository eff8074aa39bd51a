// Package commentary fetches the commentary and cross-references for the
// verse a reader selects. Both fetches run concurrently and merge into one
// State; results that arrive after the selection has moved on are dropped.
package commentary

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/oracle"
)

// ErrorMessage is shown in place of the commentary when it cannot be generated.
const ErrorMessage = "Não foi possível carregar o comentário. Verifique sua conexão ou chave de API."

type State struct {
	IsLoading         bool                     `json:"is_loading"`
	Content           *bible.CommentaryContent `json:"content"`
	Error             string                   `json:"error,omitempty"`
	ForReference      string                   `json:"for_reference,omitempty"`
	IsCrossRefLoading bool                     `json:"is_cross_ref_loading"`
	CrossReferences   []bible.CrossReference   `json:"cross_references"`
}

func (s State) clone() State {
	out := s
	if s.Content != nil {
		c := *s.Content
		out.Content = &c
	}
	if s.CrossReferences != nil {
		out.CrossReferences = append([]bible.CrossReference{}, s.CrossReferences...)
	}
	return out
}

type Option func(*Orchestrator)

// WithTimeout bounds each oracle call. Zero, the default, means no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

type Orchestrator struct {
	oracle  oracle.Oracle
	logger  *zap.Logger
	timeout time.Duration

	mu       sync.Mutex
	state    State
	selected *bible.Verse
	// generation changes on every selection, toggle-off and reset; a fetch
	// only merges if the generation it was issued under is still current.
	generation uint64

	inflight sync.WaitGroup
	pending  atomic.Int64
}

func New(o oracle.Oracle, opts ...Option) *Orchestrator {
	orc := &Orchestrator{oracle: o, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(orc)
	}
	orc.logger = orc.logger.Named("commentary")
	return orc
}

// Select handles a reader choosing verse.
//
// Choosing the verse that is already selected deselects it and voids its
// commentary. Choosing a verse whose commentary is already loaded or loading
// reuses it. Otherwise the commentary and cross-reference fetches start and the
// returned State shows both loading.
func (o *Orchestrator) Select(verse bible.Verse) State {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.selected != nil && o.selected.SameAs(verse) {
		o.selected = nil
		o.generation++
		o.state = State{}
		return o.state.clone()
	}

	v := verse
	o.selected = &v
	key := verse.Reference()
	if o.state.ForReference == key && o.state.Error == "" {
		return o.state.clone()
	}

	o.generation++
	gen := o.generation
	o.state = State{
		IsLoading:         true,
		IsCrossRefLoading: true,
		ForReference:      key,
	}

	o.inflight.Add(2)
	o.pending.Add(2)
	go o.fetchCommentary(gen, verse)
	go o.fetchCrossReferences(gen, verse)

	return o.state.clone()
}

// Deselect clears the selection but keeps the commentary, so selecting the
// same verse again shows it without new oracle calls.
func (o *Orchestrator) Deselect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selected = nil
}

// Reset clears the selection and voids any commentary, loaded or in flight.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selected = nil
	o.generation++
	o.state = State{}
}

func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

func (o *Orchestrator) Selected() (bible.Verse, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selected == nil {
		return bible.Verse{}, false
	}
	return *o.selected, true
}

// Pending reports how many fetches have not finished yet, stale ones included.
func (o *Orchestrator) Pending() int {
	return int(o.pending.Load())
}

// Wait blocks until every fetch issued so far has finished.
func (o *Orchestrator) Wait() {
	o.inflight.Wait()
}

func (o *Orchestrator) callContext() (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(context.Background(), o.timeout)
	}
	return context.WithCancel(context.Background())
}

func (o *Orchestrator) fetchCommentary(gen uint64, verse bible.Verse) {
	defer o.inflight.Done()
	defer o.pending.Add(-1)
	ctx, cancel := o.callContext()
	defer cancel()

	content, err := o.oracle.GenerateCommentary(ctx, verse)
	if err != nil {
		o.logger.Warn("commentary failed", zap.String("reference", verse.Reference()), zap.Error(err))
	}

	o.merge(gen, verse, func(s *State) {
		s.IsLoading = false
		if err != nil {
			s.Error = ErrorMessage
			return
		}
		s.Content = &content
	})
}

func (o *Orchestrator) fetchCrossReferences(gen uint64, verse bible.Verse) {
	defer o.inflight.Done()
	defer o.pending.Add(-1)
	ctx, cancel := o.callContext()
	defer cancel()

	refs, err := o.oracle.GenerateCrossReferences(ctx, verse)
	if err != nil {
		o.logger.Warn("cross-references failed", zap.String("reference", verse.Reference()), zap.Error(err))
		refs = nil
	}
	if refs == nil {
		refs = []bible.CrossReference{}
	}

	o.merge(gen, verse, func(s *State) {
		s.IsCrossRefLoading = false
		s.CrossReferences = refs
	})
}

// merge applies fn to the live state if gen is still current.
func (o *Orchestrator) merge(gen uint64, verse bible.Verse, fn func(*State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		o.logger.Debug("dropping stale result", zap.String("reference", verse.Reference()))
		return
	}
	fn(&o.state)
}
