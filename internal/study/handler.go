package study

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/library"
	"github.com/taiwoajasa245/verbum-dei-api/internal/search"
	"github.com/taiwoajasa245/verbum-dei-api/pkg/response"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) Handler {
	return Handler{manager: manager}
}

func currentSession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, ok := SessionFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "no session")
	}
	return s, ok
}

func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	_, token, err := h.manager.Create(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to create session", err.Error())
		return
	}
	response.Created(w, token, "session created")
}

func (h *Handler) BooksHandler(w http.ResponseWriter, r *http.Request) {
	byGroup := bible.BooksByGroup()
	groups := make([]BookGroupView, 0, len(byGroup))
	seen := make(map[bible.BookGroup]bool, len(byGroup))
	for _, b := range bible.Books {
		if seen[b.Group] {
			continue
		}
		seen[b.Group] = true
		groups = append(groups, BookGroupView{Group: b.Group, Books: byGroup[b.Group]})
	}
	response.Success(w, groups, "successfully")
}

func (h *Handler) TranslationsHandler(w http.ResponseWriter, r *http.Request) {
	keys := bible.TranslationKeys()
	out := make([]TranslationView, 0, len(keys))
	for _, k := range keys {
		out = append(out, TranslationView{Key: k, Name: bible.Translations[k]})
	}
	response.Success(w, map[string]any{
		"default":      bible.DefaultTranslation,
		"translations": out,
	}, "successfully")
}

func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	values := r.URL.Query()
	q := search.Query{
		Term:        values.Get("q"),
		Book:        values.Get("book"),
		Translation: values.Get("translation"),
	}

	view, err := s.Search(r.Context(), q)
	if errors.Is(err, ErrRejectedQuery) {
		response.Error(w, http.StatusBadRequest, "Invalid search query", map[string]string{
			"q": err.Error(),
		})
		return
	}
	response.Success(w, view, "successfully")
}

func (h *Handler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.View(), "successfully")
}

func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.History(), "successfully")
}

func (h *Handler) ClearHistoryHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := s.ClearHistory(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to clear history", err.Error())
		return
	}
	response.Success(w, []string{}, "history cleared")
}

func (h *Handler) SelectVerseHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var verse bible.Verse
	if err := json.NewDecoder(r.Body).Decode(&verse); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	panel, err := s.Select(verse)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid verse", err.Error())
		return
	}
	response.Success(w, panel, "successfully")
}

func (h *Handler) DeselectVerseHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	s.Deselect()
	response.Success(w, s.Panel(), "successfully")
}

func (h *Handler) CommentaryHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.Panel(), "successfully")
}

func (h *Handler) SaveCommentaryHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	item, err := s.SaveCommentary(r.Context())
	if errors.Is(err, ErrNothingToSave) {
		response.Error(w, http.StatusConflict, "Nothing to save", err.Error())
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save commentary", err.Error())
		return
	}
	response.Created(w, item, "commentary saved")
}

func (h *Handler) SavedHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.Saved(), "successfully")
}

func (h *Handler) DeleteSavedHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	err := s.DeleteSaved(r.Context(), id)
	if errors.Is(err, library.ErrSavedNotFound) {
		response.Error(w, http.StatusNotFound, "Saved commentary not found", map[string]string{"id": id})
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to delete saved commentary", err.Error())
		return
	}
	response.Success(w, s.Saved(), "saved commentary deleted")
}

func (h *Handler) ClearSavedHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := s.ClearSaved(r.Context()); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to clear saved commentaries", err.Error())
		return
	}
	response.Success(w, []bible.SavedCommentary{}, "saved commentaries cleared")
}

func (h *Handler) HighlightsHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.Highlights(), "successfully")
}

func (h *Handler) SetHighlightHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req HighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	color, err := bible.ParseHighlightColor(req.Color)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid highlight color", map[string]any{
			"color":   req.Color,
			"allowed": bible.HighlightColors,
		})
		return
	}

	err = s.SetHighlight(r.Context(), req.Verse, color)
	if errors.Is(err, ErrInvalidVerse) {
		response.Error(w, http.StatusBadRequest, "Invalid verse", err.Error())
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save highlight", err.Error())
		return
	}
	response.Success(w, s.Highlights(), "highlight saved")
}

func (h *Handler) NotesHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.Notes(), "successfully")
}

func (h *Handler) SaveNoteHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	err := s.SaveNote(r.Context(), req.Verse, req.Text)
	if errors.Is(err, ErrInvalidVerse) {
		response.Error(w, http.StatusBadRequest, "Invalid verse", err.Error())
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save note", err.Error())
		return
	}
	response.Success(w, s.Notes(), "note saved")
}

func (h *Handler) ReadingModeHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	on, err := s.ToggleReadingMode()
	if err != nil {
		response.Error(w, http.StatusConflict, "Reading mode unavailable", err.Error())
		return
	}
	response.Success(w, ReadingModeResponse{ReadingMode: on}, "successfully")
}

// Routes mounts the session endpoints on r. Everything except session creation
// and the catalog requires a bearer session token.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/catalog/books", h.BooksHandler)
	r.Get("/catalog/translations", h.TranslationsHandler)
	r.Post("/sessions", h.CreateSessionHandler)

	r.Group(func(r chi.Router) {
		r.Use(h.manager.SessionMiddleware)
		r.Get("/search", h.SearchHandler)
		r.Get("/results", h.ResultsHandler)
		r.Get("/history", h.HistoryHandler)
		r.Delete("/history", h.ClearHistoryHandler)
		r.Post("/selection", h.SelectVerseHandler)
		r.Delete("/selection", h.DeselectVerseHandler)
		r.Get("/commentary", h.CommentaryHandler)
		r.Post("/commentary/save", h.SaveCommentaryHandler)
		r.Get("/saved", h.SavedHandler)
		r.Delete("/saved", h.ClearSavedHandler)
		r.Delete("/saved/{id}", h.DeleteSavedHandler)
		r.Get("/highlights", h.HighlightsHandler)
		r.Put("/highlights", h.SetHighlightHandler)
		r.Get("/notes", h.NotesHandler)
		r.Put("/notes", h.SaveNoteHandler)
		r.Post("/reading-mode", h.ReadingModeHandler)
	})
}
