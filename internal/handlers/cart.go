package handlers

import (
	"net/http"
	"strconv"

	"vitrine_back_end/internal/catalog"
	"vitrine_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

func cartResponse(st store.State) gin.H {
	return gin.H{
		"items": st.Cart,
		"total": st.CartTotal(),
		"count": st.CartItemsCount(),
	}
}

//
// 🟢 GET /api/cart
//
func GetCart(c *gin.Context) {
	sessionID := c.GetString("session_id")

	st, err := stateStore.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(st))
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var input struct {
		ProductID int `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	product, ok := catalog.ByID(input.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	st, err := stateStore.Mutate(c.Request.Context(), sessionID, func(s store.State) store.State {
		return s.AddToCart(product)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   st.Cart,
		"total":   st.CartTotal(),
		"count":   st.CartItemsCount(),
	})
}

//
// 🟢 PUT /api/cart/quantity
//
// Une quantité ≤ 0 retire l'article du panier.
func UpdateQuantity(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var input struct {
		ProductID int `json:"productId" binding:"required"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	st, err := stateStore.Mutate(c.Request.Context(), sessionID, func(s store.State) store.State {
		return s.UpdateQuantity(input.ProductID, input.Quantity)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(st))
}

//
// ❌ DELETE /api/cart/:productId
//
func RemoveFromCart(c *gin.Context) {
	sessionID := c.GetString("session_id")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	st, err := stateStore.Mutate(c.Request.Context(), sessionID, func(s store.State) store.State {
		return s.RemoveFromCart(productID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   st.Cart,
	})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	sessionID := c.GetString("session_id")

	_, err := stateStore.Mutate(c.Request.Context(), sessionID, func(s store.State) store.State {
		return s.ClearCart()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
