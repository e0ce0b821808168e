package main

import (
	"context"
	"log"
	"os"

	"vitrine_back_end/internal/checkout"
	"vitrine_back_end/internal/config"
	"vitrine_back_end/internal/database"
	"vitrine_back_end/internal/handlers"
	"vitrine_back_end/internal/routes"
	"vitrine_back_end/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	stateStore := store.New(database.NewRedisKV(database.Redis))
	handlers.Init(stateStore, initPaymentProcessor())

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Getenv("FRONTEND_URL", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Vitrine lancé sur le port", port)
	r.Run(":" + port)
}

// initPaymentProcessor choisit le processeur de paiement : Stripe si la
// clé est configurée, sinon le processeur simulé (délai unique, succès
// ou refus générique).
func initPaymentProcessor() checkout.PaymentProcessor {
	if secret := os.Getenv("STRIPE_SECRET_KEY"); secret != "" {
		stripe.Key = secret
		log.Println("✅ Stripe initialisé")
		return &checkout.StripeProcessor{}
	}

	sim := checkout.NewSimulatedProcessor()
	if os.Getenv("SIMULATED_PAYMENT_DECLINE") == "true" {
		sim.Decline = true
	}
	log.Println("⚠️ Pas de clé Stripe — paiement simulé activé")
	return sim
}

// warmupRedisCache pré-chauffe le cache Redis pour éviter la latence du premier appel
func warmupRedisCache() {
	ctx := context.Background()
	// Faire un ping pour établir la connexion
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
