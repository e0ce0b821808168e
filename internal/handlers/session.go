package handlers

import (
	"net/http"

	"vitrine_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// 🟢 POST /api/session
//
// Ouvre une session anonyme : le front stocke le jeton et le présente
// en Bearer sur toutes les autres routes.
func CreateSession(c *gin.Context) {
	sessionID := uuid.NewString()

	token, err := middleware.GenerateSessionToken(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"token":      token,
	})
}
