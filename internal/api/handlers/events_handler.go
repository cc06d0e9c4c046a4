package handlers

import (
    "net/http"

    "github.com/gorilla/websocket"
    "go.uber.org/zap"

    "github.com/nexusnova/atlas/internal/session"
    "github.com/nexusnova/atlas/pkg/logger"
)

// EventsHandler streams session events (graph changes, picks, syncs) to
// websocket clients so rendering layers can re-derive their views.
type EventsHandler struct {
    sess     *session.Session
    upgrader websocket.Upgrader
}

func NewEventsHandler(sess *session.Session) *EventsHandler {
    return &EventsHandler{
        sess: sess,
        upgrader: websocket.Upgrader{
            // Same permissive posture as the CORS middleware.
            CheckOrigin: func(r *http.Request) bool { return true },
        },
    }
}

// Stream upgrades the connection and forwards every session event as a
// JSON message until the client disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
    conn, err := h.upgrader.Upgrade(w, r, nil)
    if err != nil {
        logger.L().Warn("websocket upgrade failed", zap.Error(err))
        return
    }

    events := make(chan session.Event, 64)
    unsubscribe := h.sess.Subscribe(func(ev session.Event) {
        select {
        case events <- ev:
        default:
            // Slow consumer; drop rather than block the session.
        }
    })
    defer unsubscribe()
    defer conn.Close()

    // Drain (and discard) client frames so close frames are processed.
    closed := make(chan struct{})
    go func() {
        defer close(closed)
        for {
            if _, _, err := conn.ReadMessage(); err != nil {
                return
            }
        }
    }()

    for {
        select {
        case <-closed:
            return
        case <-r.Context().Done():
            return
        case ev := <-events:
            if err := conn.WriteJSON(ev); err != nil {
                return
            }
        }
    }
}
