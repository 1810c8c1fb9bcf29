package websocket

// ─── Live events (Redis pub/sub → dashboard watchers) ───────────────

type Event string

const (
	EventSessionStarted Event = "session_started"
	EventSessionStopped Event = "session_stopped"
	EventPlayerJoined   Event = "player_joined"
	EventPlayerFinished Event = "player_finished"
	EventError          Event = "error"
	EventPong           Event = "pong"
)

// LiveEvent is published on the live events channel whenever the session
// or one of its players changes state. The dashboard watch stream forwards
// these verbatim.
type LiveEvent struct {
	Event      Event  `json:"event"`
	QuizID     string `json:"quiz_id,omitempty"`
	Title      string `json:"title,omitempty"`
	JoinCode   string `json:"join_code,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
	Percentage int    `json:"percentage,omitempty"`
	// Expired distinguishes a timer-driven stop from a manual one.
	Expired bool `json:"expired,omitempty"`
}

// ─── Watch stream (client → server) ─────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestPayload is the only inbound message shape on the watch stream.
type RequestPayload struct {
	Action Action `json:"action"`
}

// ErrorResponse is sent when the stream cannot continue.
type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

// PongResponse answers a ping.
type PongResponse struct {
	Event Event `json:"event"`
}
