package catalog

import "vitrine_back_end/internal/models"

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

// Catalogue statique embarqué. Source unique de vérité pour les produits :
// aucune base externe, l'ordre de déclaration est l'ordre "featured".
var products = []models.Product{
	{
		ID:            1,
		Name:          "Premium Wireless Headphones",
		Price:         299.99,
		OriginalPrice: floatPtr(399.99),
		Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
		Category:      "electronics",
		Rating:        4.5,
		Reviews:       234,
		Badge:         strPtr("Best Seller"),
		Description:   "High-quality wireless headphones with noise cancellation",
	},
	{
		ID:            2,
		Name:          "Minimalist Watch",
		Price:         149.99,
		OriginalPrice: floatPtr(199.99),
		Image:         "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
		Category:      "accessories",
		Rating:        4.8,
		Reviews:       189,
		Badge:         strPtr("New"),
		Description:   "Elegant minimalist design with premium materials",
	},
	{
		ID:            3,
		Name:          "Smart Fitness Tracker",
		Price:         89.99,
		OriginalPrice: floatPtr(129.99),
		Image:         "https://images.unsplash.com/photo-1575311373937-040b8e1fd5b6?w=500",
		Category:      "electronics",
		Rating:        4.3,
		Reviews:       567,
		Badge:         strPtr("Sale"),
		Description:   "Track your fitness goals with advanced sensors",
	},
	{
		ID:            4,
		Name:          "Leather Backpack",
		Price:         199.99,
		OriginalPrice: nil,
		Image:         "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=500",
		Category:      "bags",
		Rating:        4.7,
		Reviews:       123,
		Badge:         nil,
		Description:   "Premium leather backpack for everyday use",
	},
	{
		ID:            5,
		Name:          "Wireless Earbuds",
		Price:         159.99,
		OriginalPrice: floatPtr(199.99),
		Image:         "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=500",
		Category:      "electronics",
		Rating:        4.6,
		Reviews:       456,
		Badge:         strPtr("Hot"),
		Description:   "Crystal clear sound with long battery life",
	},
	{
		ID:            6,
		Name:          "Designer Sunglasses",
		Price:         129.99,
		OriginalPrice: nil,
		Image:         "https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=500",
		Category:      "accessories",
		Rating:        4.4,
		Reviews:       89,
		Badge:         nil,
		Description:   "UV protection with stylish design",
	},
}

// All retourne une copie du catalogue, dans l'ordre "featured".
func All() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

// ByID retourne le produit correspondant, ou false s'il n'existe pas.
func ByID(id int) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Categories retourne les catégories distinctes, dans l'ordre du catalogue.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
