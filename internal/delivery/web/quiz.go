package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/repository"
	"github.com/aliskhannn/api-learning-hub/internal/service"
)

type levelsResponse struct {
	Levels       []repository.LevelInfo `json:"levels"`
	CountOptions []int                  `json:"count_options"`
	DefaultCount int                    `json:"default_count"`
}

type startRequest struct {
	Level  string `json:"level"`
	Count  int    `json:"count"`
	UserID int64  `json:"user_id"`
}

type sessionResponse struct {
	ID   uuid.UUID        `json:"id"`
	View service.QuizView `json:"view"`
}

// ListLevels handles GET /api/levels.
func (h *Handler) ListLevels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, levelsResponse{
		Levels:       h.bank.Levels(),
		CountOptions: h.opts.CountOptions,
		DefaultCount: h.opts.DefaultCount,
	})
}

// CreateSession handles POST /api/quiz/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	level, err := entities.ParseLevel(req.Level)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Count == 0 {
		req.Count = h.opts.DefaultCount
	}

	e := h.newEngine(req.UserID)
	view, err := e.Start(r.Context(), level, req.Count)
	if err != nil {
		e.Close()
		h.writeError(w, r, err)
		return
	}

	id := uuid.New()
	h.sessions.Store(id, e)

	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, View: view})
}

// GetSession handles GET /api/quiz/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, e, err := h.sessionFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, View: e.View()})
}

// DeleteSession handles DELETE /api/quiz/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, _, err := h.sessionFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

type answerRequest struct {
	Index *int `json:"index"`
}

type quitRequest struct {
	Confirmed bool `json:"confirmed"`
}

type keyRequest struct {
	Key string `json:"key"`
}

// SessionAction handles POST /api/quiz/sessions/{id}/{action}.
func (h *Handler) SessionAction(w http.ResponseWriter, r *http.Request) {
	id, e, err := h.sessionFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var view service.QuizView
	switch action := chi.URLParam(r, "action"); action {
	case "answer":
		var req answerRequest
		if err = decodeJSON(r, &req); err == nil {
			if req.Index == nil {
				err = fmt.Errorf("%w: index is required", errBadRequest)
				break
			}
			view, err = e.SelectAnswer(*req.Index)
		}
	case "next":
		view, err = e.Next()
	case "previous":
		view, err = e.Previous()
	case "finish":
		view, err = e.Finish()
	case "restart":
		view, err = e.Restart(r.Context())
	case "review":
		view, err = e.Review()
	case "quit":
		var req quitRequest
		if err = decodeJSON(r, &req); err == nil {
			view, err = e.Quit(req.Confirmed)
		}
	case "back":
		view = e.BackToSelect()
	case "key":
		var req keyRequest
		if err = decodeJSON(r, &req); err == nil {
			view, err = e.HandleKey(req.Key)
		}
	default:
		err = fmt.Errorf("%w: unknown action %q", errBadRequest, action)
	}

	// Operations without an active session are ignored, not reported.
	if err != nil && !errors.Is(err, service.ErrNoActiveSession) {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{ID: id, View: view})
}

func (h *Handler) sessionFromRequest(r *http.Request) (uuid.UUID, *service.QuizEngine, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: invalid session id", errBadRequest)
	}
	e, err := h.engine(id)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, e, nil
}
