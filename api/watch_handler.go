package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"cachesalvage/discovery"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWatch upgrades to a websocket and streams discovery.WatchEvent
// messages for newly arrived cache files in the requested directory until
// the client disconnects.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	if dir == "" {
		http.Error(w, "dir is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[api] watch upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	events := make(chan discovery.WatchEvent, 16)
	if err := discovery.Watch(ctx, dir, events); err != nil {
		conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go drainClientMessages(conn)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("[api] watch write failed: %v", err)
				return
			}
		}
	}
}

// drainClientMessages discards anything the client sends, only using
// reads to detect disconnects and keep the read deadline fresh.
func drainClientMessages(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
