package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type streamMessage struct {
	Key string `json:"key"`
}

// QuizStream handles GET /ws/quiz/{id}. The current view is pushed after
// every transition and timer tick; clients may send {"key": "..."} messages.
func (h *Handler) QuizStream(w http.ResponseWriter, r *http.Request) {
	id, e, err := h.sessionFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	done := h.metrics.StreamOpened("quiz")
	defer done()

	views, unsubscribe := e.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			var msg streamMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			// Keep the session alive while the client is active.
			h.sessions.Get(id)
			if msg.Key != "" {
				_, _ = e.HandleKey(msg.Key)
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case v, ok := <-views:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"), time.Now().Add(time.Second))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(sessionResponse{ID: id, View: v}); err != nil {
				return
			}
		}
	}
}
