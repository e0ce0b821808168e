package handlers

import (
	"net/http"

	"vitrine_back_end/internal/catalog"
	"vitrine_back_end/internal/models"
	"vitrine_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

//
// 🟢 GET /api/favorites
//
// Retourne les ids favoris et les produits correspondants.
func GetFavorites(c *gin.Context) {
	sessionID := c.GetString("session_id")

	st, err := stateStore.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture favoris"})
		return
	}

	products := []models.Product{}
	for _, id := range st.Favorites {
		if p, ok := catalog.ByID(id); ok {
			products = append(products, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ids":   st.Favorites,
		"items": products,
	})
}

//
// 🟢 POST /api/favorites/toggle
//
// Ajoute le produit aux favoris s'il est absent, le retire sinon.
func ToggleFavorite(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var input struct {
		ProductID int `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if _, ok := catalog.ByID(input.ProductID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	st, err := stateStore.Mutate(c.Request.Context(), sessionID, func(s store.State) store.State {
		return s.ToggleFavorite(input.ProductID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour favoris"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ids":        st.Favorites,
		"isFavorite": st.IsFavorite(input.ProductID),
	})
}
