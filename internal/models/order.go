package models

import "time"

// Statuts d'une commande.
const (
	OrderStatusPaid = "paid"
)

type OrderCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderShipping struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order est l'enregistrement construit à la fin du checkout puis
// persisté comme "dernière commande" de la session.
type Order struct {
	ID         string        `json:"id"`
	Customer   OrderCustomer `json:"customer"`
	Shipping   OrderShipping `json:"shippingAddress"`
	Items      []CartItem    `json:"items"`
	Total      float64       `json:"total"`
	Status     string        `json:"status"`
	PaymentRef string        `json:"payment_ref,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
