package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/raskell/unistroke/internal/app"
	"github.com/raskell/unistroke/internal/stroke"
	"github.com/raskell/unistroke/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// streamMessage is a frame received from a stream client.
type streamMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// matchMessage is sent to the client when a recorded stroke matches a
// template.
type matchMessage struct {
	Type     string  `json:"type"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Distance float64 `json:"distance"`
}

// errorMessage is sent to the client when a recorded stroke cannot be
// matched.
type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// StreamHandler runs interactive recognition sessions over WebSocket.
// Each connection gets its own recorder; the client sends start, point,
// and stop frames, and receives a match or error frame per stroke.
type StreamHandler struct {
	app *app.App
	log logger.Logger
}

// NewStreamHandler creates a new StreamHandler backed by the given
// application.
func NewStreamHandler(a *app.App, log logger.Logger) *StreamHandler {
	return &StreamHandler{app: a, log: log}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", logger.Error(err))
		return
	}
	defer conn.Close()

	recorder := app.NewRecorder()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg streamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(conn, errorMessage{Type: "error", Error: "invalid frame"})
			continue
		}

		switch msg.Type {
		case "start":
			recorder.Start()
		case "point":
			recorder.Add(msg.X, msg.Y)
		case "stop":
			if !recorder.Active() {
				h.send(conn, errorMessage{Type: "error", Error: "no recording in progress"})
				continue
			}
			h.recognize(conn, recorder.Stop())
		case "cancel":
			recorder.Stop()
		default:
			h.send(conn, errorMessage{Type: "error", Error: "unknown frame type"})
		}
	}
}

// recognize matches a recorded stroke and reports the result to the
// client.
func (h *StreamHandler) recognize(conn *websocket.Conn, path stroke.Path) {
	match, err := h.app.Recognize(path)
	if err != nil {
		h.send(conn, errorMessage{Type: "error", Error: err.Error()})
		return
	}

	h.send(conn, matchMessage{
		Type:     "match",
		ID:       match.Template.ID,
		Name:     match.Template.Name,
		Score:    match.Score,
		Distance: match.Distance,
	})
}

// send writes a JSON frame. Write failures surface on the next read.
func (h *StreamHandler) send(conn *websocket.Conn, msg interface{}) {
	if err := conn.WriteJSON(msg); err != nil {
		h.log.Debug("websocket write failed", logger.Error(err))
	}
}
