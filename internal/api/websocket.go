package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pdf-extractor/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// WebSocket message types for the state feed
const (
	// Client -> Server messages
	MsgTypePing = "ping"

	// Server -> Client messages
	MsgTypeState = "state"
	MsgTypePong  = "pong"
	MsgTypeError = "error"
)

const stateFeedBuffer = 16

// WebSocket message structure
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WebSocket error response
type WSErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// outbound is a queued message. at is the snapshot time for state messages.
type outbound struct {
	msg WSMessage
	at  time.Time
}

// snapshotOrder drops state snapshots older than the last one sent.
type snapshotOrder struct {
	last time.Time
}

func (o *snapshotOrder) admit(at time.Time) bool {
	if at.Before(o.last) {
		return false
	}
	o.last = at
	return true
}

// WebSocketHandler pushes workflow snapshots to the browser
type WebSocketHandler struct {
	sessions Sessions
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new state feed handler
func NewWebSocketHandler(sessions Sessions) StateStreamHandler {
	return &WebSocketHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
	}
}

// HandleStateStream upgrades the connection, sends the current snapshot and
// then one snapshot per workflow transition until the client disconnects.
func (wsh *WebSocketHandler) HandleStateStream(c echo.Context) error {
	wf := resolveWorkflow(c, wsh.sessions)

	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	out := make(chan outbound, stateFeedBuffer)
	done := make(chan struct{})

	unsubscribe := wf.Subscribe(func(snap models.Snapshot) {
		select {
		case out <- stateOutbound(snap):
		case <-done:
		default:
			log.Warn().Str("session", wf.ID()).Msg("state feed full, dropping snapshot")
		}
	})
	defer unsubscribe()

	go wsh.writeLoop(ws, out, done)
	out <- stateOutbound(wf.Snapshot())

	log.Debug().Str("session", wf.ID()).Msg("state feed connected")

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("state feed connection error")
			}
			break
		}

		var reply WSMessage
		switch msg.Type {
		case MsgTypePing:
			// An open feed counts as activity for session expiry
			wsh.sessions.TouchSession(wf.ID())
			reply = WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()}
		default:
			reply = WSMessage{
				Type:      MsgTypeError,
				Timestamp: time.Now().UnixMilli(),
				Payload: mustJSON(WSErrorResponse{
					Message: "Unknown message type: " + msg.Type,
					Code:    "INVALID_TYPE",
				}),
			}
		}

		select {
		case out <- outbound{msg: reply}:
		default:
		}
	}

	close(done)
	log.Debug().Str("session", wf.ID()).Msg("state feed disconnected")
	return nil
}

// writeLoop is the only writer on ws.
func (wsh *WebSocketHandler) writeLoop(ws *websocket.Conn, out <-chan outbound, done <-chan struct{}) {
	var order snapshotOrder
	for {
		select {
		case <-done:
			return
		case o := <-out:
			if !o.at.IsZero() && !order.admit(o.at) {
				continue
			}
			if err := ws.WriteJSON(o.msg); err != nil {
				log.Debug().Err(err).Msg("state feed write failed")
				ws.Close()
				return
			}
		}
	}
}

func stateOutbound(snap models.Snapshot) outbound {
	return outbound{
		msg: WSMessage{
			Type:      MsgTypeState,
			Payload:   mustJSON(snap),
			Timestamp: time.Now().UnixMilli(),
		},
		at: snap.UpdatedAt,
	}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
