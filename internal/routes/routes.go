package routes

import (
	"vitrine_back_end/internal/handlers"
	"vitrine_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Session anonyme (seule route sans jeton)
	api.POST("/session", handlers.CreateSession)

	authed := api.Group("")
	authed.Use(middleware.SessionRequired())

	// Catalogue
	authed.GET("/products", handlers.GetProducts)
	authed.GET("/products/:id", handlers.GetProduct)
	authed.GET("/categories", handlers.GetCategories)

	// Panier
	authed.GET("/cart", handlers.GetCart)
	authed.POST("/cart/add", handlers.AddToCart)
	authed.PUT("/cart/quantity", handlers.UpdateQuantity)
	authed.DELETE("/cart/:productId", handlers.RemoveFromCart)
	authed.DELETE("/cart", handlers.ClearCart)
	authed.GET("/cart/ws", handlers.CartWebSocket)

	// Favoris
	authed.GET("/favorites", handlers.GetFavorites)
	authed.POST("/favorites/toggle", handlers.ToggleFavorite)

	// Filtres
	authed.GET("/filters", handlers.GetFilters)
	authed.PUT("/filters/category", handlers.SetCategory)
	authed.PUT("/filters/search", handlers.SetSearchQuery)
	authed.PUT("/filters/sort", handlers.SetSortBy)
	authed.PUT("/filters/view", handlers.SetViewMode)
	authed.PUT("/filters/price", handlers.SetPriceRange)
	authed.PUT("/filters/rating", handlers.SetMinRating)
	authed.POST("/filters/toggle", handlers.ToggleFilters)
	authed.DELETE("/filters", handlers.ClearFilters)

	// Checkout
	authed.POST("/checkout/start", handlers.StartCheckout)
	authed.GET("/checkout", handlers.GetCheckout)
	authed.POST("/checkout/field", handlers.SetCheckoutField)
	authed.POST("/checkout/next", handlers.NextCheckoutStep)
	authed.POST("/checkout/back", handlers.PrevCheckoutStep)
	authed.POST("/checkout/submit", handlers.SubmitCheckout)
	authed.GET("/orders/last", handlers.GetLastOrder)
}
