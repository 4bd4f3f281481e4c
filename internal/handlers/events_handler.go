package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SereniteSpa01/spa-scheduler/internal/events"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
)

type EventsHandler struct {
	hub *events.Hub
}

func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// l'origine est déjà contrôlée par le middleware CORS
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Subscribe ouvre la session temps réel d'un utilisateur authentifié.
// L'abonnement dure exactement la vie de la connexion : retrait du hub
// garanti à la fermeture, aucune mise à jour ne fuit vers une vue fermée.
func (h *EventsHandler) Subscribe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("ws upgrade:", err)
		return
	}

	session := &events.Session{UserID: userID, Conn: conn}
	h.hub.Register(session)

	defer func() {
		h.hub.Unregister(session)
		conn.Close()
	}()

	// la session ne fait que recevoir; on draine jusqu'à la fermeture
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
