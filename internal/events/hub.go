package events

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Session est une connexion websocket authentifiée. L'abonnement vit avec la
// session : registre à l'ouverture, retrait déterministe à la fermeture.
// Aucune mise à jour ne fuit vers une vue démontée.
type Session struct {
	UserID uint
	Conn   *websocket.Conn
}

type Hub struct {
	broker *Broker

	mu       sync.RWMutex
	sessions map[*websocket.Conn]uint

	register   chan *Session
	unregister chan *Session
}

func NewHub(broker *Broker) *Hub {
	return &Hub{
		broker:     broker,
		sessions:   make(map[*websocket.Conn]uint),
		register:   make(chan *Session),
		unregister: make(chan *Session),
	}
}

// Run consomme le broker et redistribue chaque enveloppe à toutes les
// sessions. Bloquant : à lancer dans sa propre goroutine.
func (h *Hub) Run(ctx context.Context) {
	stream := h.broker.Subscribe(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case s := <-h.register:
			h.mu.Lock()
			h.sessions[s.Conn] = s.UserID
			h.mu.Unlock()
			log.Printf("ws session opened: user %d", s.UserID)

		case s := <-h.unregister:
			h.mu.Lock()
			delete(h.sessions, s.Conn)
			h.mu.Unlock()
			log.Printf("ws session closed: user %d", s.UserID)

		case env, ok := <-stream:
			if !ok {
				return
			}
			h.broadcast(env)
		}
	}
}

func (h *Hub) broadcast(env Envelope) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.sessions))
	for conn := range h.sessions {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(env); err != nil {
			log.Println("ws write:", err)
			conn.Close()
			h.mu.Lock()
			delete(h.sessions, conn)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Register(s *Session) {
	h.register <- s
}

func (h *Hub) Unregister(s *Session) {
	h.unregister <- s
}
