// Package search turns a reader's query into an ordered list of verses.
package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/oracle"
)

// MinTermLength is the shortest term accepted without a book filter.
const MinTermLength = 2

// Relevance is assigned to every result; ranking is the oracle's job.
const Relevance = 100

type Query struct {
	Term        string `json:"q"`
	Book        string `json:"book,omitempty"`
	Translation string `json:"translation,omitempty"`
}

// Accepted reports whether q should reach the oracle at all. A lone book filter
// makes short numeric terms meaningful as chapter numbers.
func (q Query) Accepted() bool {
	term := strings.TrimSpace(q.Term)
	if term == "" {
		return false
	}
	if utf8.RuneCountInString(term) < MinTermLength && strings.TrimSpace(q.Book) == "" {
		return false
	}
	return true
}

// Effective returns the text sent to the oracle: "{book} {term}" when a book is
// selected and the term is a bare number, the trimmed term otherwise.
func (q Query) Effective() string {
	term := strings.TrimSpace(q.Term)
	book := strings.TrimSpace(q.Book)
	if book != "" && isNumeric(term) {
		return book + " " + term
	}
	return term
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type Service struct {
	oracle             oracle.Oracle
	defaultTranslation string
	logger             *zap.Logger
}

func NewService(o oracle.Oracle, defaultTranslation string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	key, _ := bible.ResolveTranslation(defaultTranslation)
	return &Service{oracle: o, defaultTranslation: key, logger: logger.Named("search")}
}

// Search asks the oracle for verses matching q. Rejected queries, oracle failures
// and unusable answers all yield an empty list; there is no error channel.
func (s *Service) Search(ctx context.Context, q Query) []bible.SearchResult {
	if !q.Accepted() {
		return []bible.SearchResult{}
	}

	translation := q.Translation
	if strings.TrimSpace(translation) == "" {
		translation = s.defaultTranslation
	}
	translation, _ = bible.ResolveTranslation(translation)

	req := oracle.SearchRequest{
		Query:       q.Effective(),
		Book:        strings.TrimSpace(q.Book),
		Translation: translation,
	}

	found, err := s.oracle.SearchVerses(ctx, req)
	if err != nil {
		s.logger.Warn("search failed", zap.String("query", req.Query), zap.Error(err))
		return []bible.SearchResult{}
	}

	results := make([]bible.SearchResult, 0, len(found))
	for _, f := range found {
		v := f.BibleVerse()
		if !v.Valid() {
			s.logger.Debug("dropping unusable verse", zap.Any("verse", f))
			continue
		}
		results = append(results, bible.SearchResult{
			Verse:     v,
			Relevance: Relevance,
			IsPrimary: f.IsPrimary,
		})
	}

	s.logger.Info("search completed",
		zap.String("query", req.Query),
		zap.String("translation", translation),
		zap.Int("results", len(results)))
	return results
}

// IsFullChapter reports whether results look like a whole chapter: more than one
// verse, all from the same book and chapter.
func IsFullChapter(results []bible.SearchResult) bool {
	if len(results) < 2 {
		return false
	}
	first := results[0].Verse
	for _, r := range results[1:] {
		if r.Verse.Book != first.Book || r.Verse.Chapter != first.Chapter {
			return false
		}
	}
	return true
}
