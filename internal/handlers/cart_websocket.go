package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"vitrine_back_end/internal/database"
	"vitrine_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket gère la synchronisation temps réel du panier : chaque
// mutation publie "updated" sur le canal de la session, et le socket
// renvoie alors l'instantané courant (badge + panneau panier).
func CartWebSocket(c *gin.Context) {
	sessionID := c.GetString("session_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// S'abonner au canal de la session
	pubsub := database.Redis.Subscribe(ctx, store.StateKey(sessionID))
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" {
				continue
			}

			st, err := stateStore.Load(ctx, sessionID)
			if err != nil {
				log.Printf("❌ Erreur lecture état session: %v", err)
				continue
			}

			response := map[string]interface{}{
				"type":  "cart_updated",
				"items": st.Cart,
				"total": st.CartTotal(),
				"count": st.CartItemsCount(),
			}

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
