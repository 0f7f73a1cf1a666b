package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	inkerr "github.com/inkwell-dev/inkwell/internal/errors"
)

const (
	streamWriteWait = 10 * time.Second
	streamPingEvery = 30 * time.Second
)

// handleStream upgrades to a WebSocket and forwards one text message
// per committed field write. Clients that cannot keep up miss
// intermediate values and receive only later ones.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.registry.Get(id); !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("stream: upgrade failed", "id", id, "error", err)
		return
	}
	client := uuid.NewString()
	s.metrics.StreamClients.Inc()
	s.logger.Debug("stream: client connected", "id", id, "client", client)

	updates, cancel := s.sink.Watch(id)
	done := make(chan struct{})

	// Reader goroutine: we never expect client frames, but reading is
	// what surfaces the close.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		cancel()
		conn.Close()
		s.metrics.StreamClients.Dec()
		s.logger.Debug("stream: client gone", "id", id, "client", client)
	}()

	// Replay the current value so a late subscriber starts consistent.
	if value, ok := s.sink.Get(id); ok {
		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(value)); err != nil {
			return
		}
	}

	ping := time.NewTicker(streamPingEvery)
	defer ping.Stop()

	for {
		select {
		case value := <-updates:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(value)); err != nil {
				werr := inkerr.New("E006").Wrap(err)
				s.logger.Debug("stream: write failed", "id", id, "client", client, "error", werr)
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
