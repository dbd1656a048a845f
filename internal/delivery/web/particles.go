package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/api-learning-hub/internal/particles"
)

const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
	maxViewportSide       = 8192
	maxSVGFrames          = 600
	writeWait             = 5 * time.Second
)

// ParticlesSVG handles GET /api/particles.svg?width=&height=&frames=&theme=&user_id=.
// It renders one frame after advancing the simulation by frames steps.
func (h *Handler) ParticlesSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := clampInt(q.Get("width"), defaultViewportWidth, 1, maxViewportSide)
	height := clampInt(q.Get("height"), defaultViewportHeight, 1, maxViewportSide)
	frames := clampInt(q.Get("frames"), 0, 0, maxSVGFrames)

	background := particles.DarkBackground
	switch q.Get("theme") {
	case "light":
		background = particles.LightBackground
	case "":
		if userID, err := strconv.ParseInt(q.Get("user_id"), 10, 64); err == nil && userID > 0 {
			if p, err := h.prefs.GetOrCreate(r.Context(), userID); err == nil && !p.DarkMode {
				background = particles.LightBackground
			}
		}
	}

	sim := particles.New(h.opts.Particles, width, height, nil)
	for i := 0; i < frames; i++ {
		sim.Step()
	}

	svg := particles.NewSVGSurface(background)
	sim.Render(svg)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(svg.String()))
}

type resizeMessage struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ParticlesStream handles GET /ws/particles?width=&height=. Frames are pushed
// on the configured interval; the client sends resize messages.
func (h *Handler) ParticlesStream(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := clampInt(q.Get("width"), defaultViewportWidth, 1, maxViewportSide)
	height := clampInt(q.Get("height"), defaultViewportHeight, 1, maxViewportSide)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	done := h.metrics.StreamOpened("particles")
	defer done()

	sim := particles.New(h.opts.Particles, width, height, nil)
	animator := particles.NewAnimator(sim, h.opts.FrameInterval, h.opts.ResizeDebounce)

	g, ctx := errgroup.WithContext(r.Context())
	ctx, cancel := context.WithCancel(ctx)

	g.Go(func() error {
		defer cancel()
		for {
			var msg resizeMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return nil
			}
			if msg.Width > 0 && msg.Height > 0 {
				animator.Resize(min(msg.Width, maxViewportSide), min(msg.Height, maxViewportSide))
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		return animator.Run(ctx, func(f particles.Frame) error {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				return err
			}
			h.metrics.FrameSent()
			return nil
		})
	})

	// The reader only returns once the connection is closed.
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	if err := g.Wait(); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.logger.Debug("particle stream ended", zap.Error(err))
	}
}

func clampInt(s string, def, lo, hi int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return max(lo, min(v, hi))
}
