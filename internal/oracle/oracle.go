// Package oracle talks to the generative model that finds verses and writes
// commentary. Everything it returns is schema-validated JSON mapped into typed
// results; failures come back as *Error values carrying a Kind.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
)

type Oracle interface {
	SearchVerses(ctx context.Context, req SearchRequest) ([]FoundVerse, error)
	GenerateCommentary(ctx context.Context, verse bible.Verse) (bible.CommentaryContent, error)
	GenerateCrossReferences(ctx context.Context, verse bible.Verse) ([]bible.CrossReference, error)
}

type SearchRequest struct {
	// Query is the effective query, already augmented with the book filter
	// when the user typed a bare chapter number.
	Query string
	// Book restricts results to one book when set.
	Book string
	// Translation is a key of bible.Translations.
	Translation string
}

type FoundVerse struct {
	Book      string `json:"book"`
	Chapter   int    `json:"chapter"`
	Verse     int    `json:"verse"`
	Text      string `json:"text"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

func (f FoundVerse) BibleVerse() bible.Verse {
	return bible.Verse{Book: f.Book, Chapter: f.Chapter, Verse: f.Verse, Text: f.Text}
}

type Kind int

const (
	KindCredential Kind = iota + 1
	KindTransport
	KindRefused
	KindEmpty
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindCredential:
		return "missing credential"
	case KindTransport:
		return "transport"
	case KindRefused:
		return "refused"
	case KindEmpty:
		return "empty response"
	case KindMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

var (
	ErrMissingCredential = errors.New("oracle: API key is not configured")
	ErrTransport         = errors.New("oracle: request failed")
	ErrRefused           = errors.New("oracle: request refused")
	ErrEmpty             = errors.New("oracle: empty response")
	ErrMalformed         = errors.New("oracle: malformed response")
)

var kindSentinels = map[Kind]error{
	KindCredential: ErrMissingCredential,
	KindTransport:  ErrTransport,
	KindRefused:    ErrRefused,
	KindEmpty:      ErrEmpty,
	KindMalformed:  ErrMalformed,
}

// Error is the failure variant of every oracle call.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("oracle %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("oracle %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind, so errors.Is(err, ErrMalformed) works.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf extracts the Kind of an oracle error, or 0 if err is not one.
func KindOf(err error) Kind {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return 0
}

// Unconfigured is used when no API key is available. Every call fails with
// ErrMissingCredential, so the process keeps serving storage features.
type Unconfigured struct{}

func (Unconfigured) SearchVerses(context.Context, SearchRequest) ([]FoundVerse, error) {
	return nil, &Error{Op: "search", Kind: KindCredential}
}

func (Unconfigured) GenerateCommentary(context.Context, bible.Verse) (bible.CommentaryContent, error) {
	return bible.CommentaryContent{}, &Error{Op: "commentary", Kind: KindCredential}
}

func (Unconfigured) GenerateCrossReferences(context.Context, bible.Verse) ([]bible.CrossReference, error) {
	return nil, &Error{Op: "cross-references", Kind: KindCredential}
}
