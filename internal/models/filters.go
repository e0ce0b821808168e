package models

// Clés de tri du catalogue.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// Modes d'affichage (présentation uniquement).
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// PriceRange borne le prix en texte brut : une valeur non numérique
// est simplement ignorée au filtrage.
type PriceRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Filters regroupe les critères de présentation du catalogue.
// Jamais persisté : durée de vie = session en mémoire.
type Filters struct {
	Category    string     `json:"category"`
	SearchQuery string     `json:"searchQuery"`
	SortBy      string     `json:"sortBy"`
	ViewMode    string     `json:"viewMode"`
	ShowFilters bool       `json:"showFilters"`
	PriceRange  PriceRange `json:"priceRange"`
	MinRating   float64    `json:"minRating"`
}

// DefaultFilters retourne les critères par défaut d'une nouvelle session.
func DefaultFilters() Filters {
	return Filters{
		Category:    "all",
		SearchQuery: "",
		SortBy:      SortFeatured,
		ViewMode:    ViewGrid,
		ShowFilters: false,
		PriceRange:  PriceRange{Min: "", Max: ""},
		MinRating:   0,
	}
}
