package web

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
	"github.com/aliskhannn/api-learning-hub/internal/particles"
	"github.com/aliskhannn/api-learning-hub/internal/service"
	"github.com/aliskhannn/api-learning-hub/internal/storage"
)

var ErrSessionNotFound = errors.New("quiz session not found")

// Options tunes the HTTP adapter.
type Options struct {
	CountOptions   []int
	DefaultCount   int
	TickInterval   time.Duration
	Particles      particles.Config
	FrameInterval  time.Duration
	ResizeDebounce time.Duration
	AllowedOrigins []string
}

// Handler serves the JSON API and the WebSocket streams.
type Handler struct {
	logger   *zap.Logger
	bank     QuestionBank
	cards    CardService
	prefs    PreferencesService
	metrics  Metrics
	selector *service.QuestionSelector
	sessions *storage.SessionStorage[uuid.UUID, *service.QuizEngine]
	opts     Options
	upgrader websocket.Upgrader
}

func NewHandler(
	logger *zap.Logger,
	bank QuestionBank,
	cards CardService,
	prefs PreferencesService,
	metrics Metrics,
	opts Options,
) *Handler {
	h := &Handler{
		logger:   logger,
		bank:     bank,
		cards:    cards,
		prefs:    prefs,
		metrics:  metrics,
		selector: service.NewQuestionSelector(),
		sessions: storage.NewSessionStorage[uuid.UUID, *service.QuizEngine](func(_ uuid.UUID, e *service.QuizEngine) {
			e.Close()
		}),
		opts: opts,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Sessions exposes the engine registry to the sweeper.
func (h *Handler) Sessions() *storage.SessionStorage[uuid.UUID, *service.QuizEngine] {
	return h.sessions
}

func (h *Handler) newEngine(userID int64) *service.QuizEngine {
	opts := []service.QuizOption{
		service.WithSelector(h.selector),
		service.WithTickInterval(h.opts.TickInterval),
		service.WithObserver(h.metrics),
	}
	if userID != 0 {
		opts = append(opts, service.WithFinishHook(func(r entities.QuizResults) {
			h.recordQuiz(userID, r)
		}))
	}
	return service.NewQuizEngine(h.bank, opts...)
}

func (h *Handler) recordQuiz(userID int64, r entities.QuizResults) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	unlocked, err := h.prefs.RecordQuiz(ctx, userID, r)
	if err != nil {
		h.logger.Error("failed to record quiz achievements", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	for _, a := range unlocked {
		h.logger.Info("achievement unlocked", zap.Int64("user_id", userID), zap.String("achievement", a.Key))
	}
}

func (h *Handler) engine(id uuid.UUID) (*service.QuizEngine, error) {
	e, ok := h.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.opts.AllowedOrigins, "*") || slices.Contains(h.opts.AllowedOrigins, origin)
}
