package models

// CartItem est un produit du panier avec sa quantité.
// Invariant : une seule entrée par produit, quantité ≥ 1.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal retourne le prix × quantité de la ligne.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
