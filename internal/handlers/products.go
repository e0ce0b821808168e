package handlers

import (
	"net/http"
	"strconv"

	"vitrine_back_end/internal/catalog"

	"github.com/gin-gonic/gin"
)

//
// 🟢 GET /api/products
//
// Retourne le catalogue filtré et trié selon les critères de la session.
func GetProducts(c *gin.Context) {
	sessionID := c.GetString("session_id")

	filters := stateStore.Filters(sessionID)
	products := catalog.FilterAndSort(catalog.All(), filters)

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
		"filters":  filters,
	})
}

//
// 🟢 GET /api/products/:id
//
func GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	product, ok := catalog.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, product)
}

//
// 🟢 GET /api/categories
//
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories()})
}
