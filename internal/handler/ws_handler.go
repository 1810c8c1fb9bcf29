package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pptuition/tuition-backend/internal/config"
	ws "github.com/pptuition/tuition-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live session events to the teacher dashboard.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// LiveWatchStream godoc
// WS /ws/v1/teacher/live/watch?token=...
// Forwards session and player events to the dashboard as they happen, so
// the teacher sees joins and finishes without waiting for the next poll.
func (h *WSHandler) LiveWatchStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	if h.rdb == nil {
		ws.WriteError(conn, "event streaming is unavailable")
		return
	}

	sub := h.rdb.Subscribe(c.Request.Context(), config.StoreKey.LiveEventsChannel())
	defer sub.Close()

	h.log.Info().Msg("Dashboard watcher connected")

	// Reader goroutine: only pings come inbound. A read error ends the
	// stream by closing the subscription.
	go func() {
		defer sub.Close()
		for {
			var msg ws.RequestPayload
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}

			switch msg.Action {
			case ws.ActionPing:
				ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}
		}
	}()

	for msg := range sub.Channel() {
		var event ws.LiveEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			h.log.Warn().Err(err).Msg("Malformed live event on channel")
			continue
		}
		if err := ws.WriteTyped(conn, event); err != nil {
			h.log.Debug().Msg("Watcher disconnected")
			return
		}
	}
}
