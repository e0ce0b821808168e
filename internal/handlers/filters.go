package handlers

import (
	"net/http"

	"vitrine_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// applyFilter applique une mutation de filtres (mémoire uniquement,
// jamais persistée) et retourne les filtres résultants.
func applyFilter(c *gin.Context, fn func(store.State) store.State) {
	sessionID := c.GetString("session_id")

	st, err := stateStore.MutateFilters(c.Request.Context(), sessionID, fn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour filtres"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filters": st.Filters})
}

//
// 🟢 PUT /api/filters/category
//
func SetCategory(c *gin.Context) {
	var input struct {
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	applyFilter(c, func(s store.State) store.State { return s.SetCategory(input.Category) })
}

//
// 🟢 PUT /api/filters/search
//
func SetSearchQuery(c *gin.Context) {
	var input struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	applyFilter(c, func(s store.State) store.State { return s.SetSearchQuery(input.Query) })
}

//
// 🟢 PUT /api/filters/sort
//
func SetSortBy(c *gin.Context) {
	var input struct {
		SortBy string `json:"sortBy"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	applyFilter(c, func(s store.State) store.State { return s.SetSortBy(input.SortBy) })
}

//
// 🟢 PUT /api/filters/view
//
func SetViewMode(c *gin.Context) {
	var input struct {
		ViewMode string `json:"viewMode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	applyFilter(c, func(s store.State) store.State { return s.SetViewMode(input.ViewMode) })
}

//
// 🟢 PUT /api/filters/price
//
func SetPriceRange(c *gin.Context) {
	var input struct {
		Min string `json:"min"`
		Max string `json:"max"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	applyFilter(c, func(s store.State) store.State { return s.SetPriceRange(input.Min, input.Max) })
}

//
// 🟢 PUT /api/filters/rating
//
func SetMinRating(c *gin.Context) {
	var input struct {
		MinRating float64 `json:"minRating"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	applyFilter(c, func(s store.State) store.State { return s.SetMinRating(input.MinRating) })
}

//
// 🟢 POST /api/filters/toggle
//
func ToggleFilters(c *gin.Context) {
	applyFilter(c, func(s store.State) store.State { return s.ToggleFilters() })
}

//
// 🧹 DELETE /api/filters
//
// Réinitialise catégorie, recherche, prix et note ; conserve tri et
// mode d'affichage.
func ClearFilters(c *gin.Context) {
	applyFilter(c, func(s store.State) store.State { return s.ClearFilters() })
}

//
// 🟢 GET /api/filters
//
func GetFilters(c *gin.Context) {
	sessionID := c.GetString("session_id")
	c.JSON(http.StatusOK, gin.H{"filters": stateStore.Filters(sessionID)})
}
