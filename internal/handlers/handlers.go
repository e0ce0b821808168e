package handlers

import (
	"vitrine_back_end/internal/checkout"
	"vitrine_back_end/internal/store"
)

// Dépendances partagées des handlers, câblées au démarrage.
var (
	stateStore *store.Store
	processor  checkout.PaymentProcessor
)

// Init câble le store de session et le processeur de paiement.
func Init(s *store.Store, p checkout.PaymentProcessor) {
	stateStore = s
	processor = p
}
