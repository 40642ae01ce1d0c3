package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"example.com/scoreboard/internal/scoreboard"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // read-only public feed
}

// Envelope WS envelope: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Feed streams the summary over a websocket: once on connect, then after
// every change. Clients only listen; anything they send is ignored.
func (h *ScoreboardHandler) Feed(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ws.SetReadLimit(512)

	updates, cancel := h.Board.Subscribe()
	defer cancel()

	done := make(chan struct{})
	writerDone := make(chan struct{})

	// writer loop
	go func() {
		defer close(writerDone)
		defer ws.Close()

		ping := h.PingInterval
		if ping <= 0 {
			ping = 25 * time.Second
		}
		ticker := time.NewTicker(ping)
		defer ticker.Stop()

		if err := writeSummary(ws, h.Board.Summary()); err != nil {
			return
		}
		for {
			select {
			case summary, ok := <-updates:
				if !ok {
					return
				}
				if err := writeSummary(ws, summary); err != nil {
					return
				}
			case <-ticker.C:
				if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// reader loop, only to notice the disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	close(done)
	<-writerDone
}

func writeSummary(ws *websocket.Conn, summary []scoreboard.Match) error {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteJSON(Envelope{Type: "summary", Payload: mustJSON(summary)})
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
