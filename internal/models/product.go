package models

// Product représente un article du catalogue. Le catalogue est figé :
// les produits ne sont jamais modifiés après le chargement.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Badge         *string  `json:"badge"`
	Description   string   `json:"description"`
}
