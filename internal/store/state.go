package store

import "vitrine_back_end/internal/models"

// State est l'instantané complet d'une session : panier, favoris, filtres.
// Chaque mutation retourne un NOUVEL instantané — les slices ne sont jamais
// partagées entre l'ancien et le nouveau, ce qui permet une détection de
// changement par simple comparaison et des tests sans UI.
//
// Seuls cart et favorites sont sérialisés vers le store clé/valeur ;
// les filtres vivent uniquement en mémoire.
type State struct {
	Cart      []models.CartItem `json:"cart"`
	Favorites []int             `json:"favorites"`
	Filters   models.Filters    `json:"-"`
}

// NewState retourne l'état vide d'une session qui démarre.
func NewState() State {
	return State{
		Cart:      []models.CartItem{},
		Favorites: []int{},
		Filters:   models.DefaultFilters(),
	}
}

// clone copie l'état avec des slices fraîches.
func (s State) clone() State {
	next := s
	next.Cart = make([]models.CartItem, len(s.Cart))
	copy(next.Cart, s.Cart)
	next.Favorites = make([]int, len(s.Favorites))
	copy(next.Favorites, s.Favorites)
	return next
}

// ---------------------------------------------
// Panier
// ---------------------------------------------

// AddToCart ajoute un produit au panier. Si le produit y est déjà,
// sa quantité est incrémentée — jamais de doublon.
func (s State) AddToCart(p models.Product) State {
	next := s.clone()
	for i := range next.Cart {
		if next.Cart[i].ID == p.ID {
			next.Cart[i].Quantity++
			return next
		}
	}
	next.Cart = append(next.Cart, models.CartItem{Product: p, Quantity: 1})
	return next
}

// RemoveFromCart retire un produit du panier. Sans effet s'il est absent.
func (s State) RemoveFromCart(productID int) State {
	next := s.clone()
	kept := next.Cart[:0]
	for _, item := range next.Cart {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	next.Cart = kept
	return next
}

// UpdateQuantity fixe la quantité d'un produit. Une quantité ≤ 0
// retire l'article du panier plutôt que de garder une ligne vide.
func (s State) UpdateQuantity(productID, quantity int) State {
	if quantity <= 0 {
		return s.RemoveFromCart(productID)
	}
	next := s.clone()
	for i := range next.Cart {
		if next.Cart[i].ID == productID {
			next.Cart[i].Quantity = quantity
			break
		}
	}
	return next
}

// ClearCart vide le panier.
func (s State) ClearCart() State {
	next := s.clone()
	next.Cart = []models.CartItem{}
	return next
}

// CartTotal retourne la somme prix × quantité du panier.
func (s State) CartTotal() float64 {
	total := 0.0
	for _, item := range s.Cart {
		total += item.Subtotal()
	}
	return total
}

// CartItemsCount retourne le nombre total d'articles (somme des quantités).
func (s State) CartItemsCount() int {
	count := 0
	for _, item := range s.Cart {
		count += item.Quantity
	}
	return count
}

// IsInCart indique si un produit est présent dans le panier.
func (s State) IsInCart(productID int) bool {
	for _, item := range s.Cart {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// ---------------------------------------------
// Favoris
// ---------------------------------------------

// ToggleFavorite ajoute l'id aux favoris s'il est absent, le retire sinon.
// Appeler deux fois revient à l'état initial.
func (s State) ToggleFavorite(productID int) State {
	next := s.clone()
	for i, id := range next.Favorites {
		if id == productID {
			next.Favorites = append(next.Favorites[:i], next.Favorites[i+1:]...)
			return next
		}
	}
	next.Favorites = append(next.Favorites, productID)
	return next
}

// IsFavorite indique si un produit est dans les favoris.
func (s State) IsFavorite(productID int) bool {
	for _, id := range s.Favorites {
		if id == productID {
			return true
		}
	}
	return false
}

// ---------------------------------------------
// Filtres — chaque setter remplace exactement un champ
// ---------------------------------------------

func (s State) SetCategory(category string) State {
	next := s.clone()
	if category == "" {
		category = "all"
	}
	next.Filters.Category = category
	return next
}

func (s State) SetSearchQuery(query string) State {
	next := s.clone()
	next.Filters.SearchQuery = query
	return next
}

// SetSortBy remplace la clé de tri. Une clé inconnue retombe sur "featured".
func (s State) SetSortBy(sortBy string) State {
	next := s.clone()
	switch sortBy {
	case models.SortFeatured, models.SortPriceLow, models.SortPriceHigh, models.SortRating:
		next.Filters.SortBy = sortBy
	default:
		next.Filters.SortBy = models.SortFeatured
	}
	return next
}

// SetViewMode remplace le mode d'affichage. Un mode inconnu retombe sur "grid".
func (s State) SetViewMode(viewMode string) State {
	next := s.clone()
	switch viewMode {
	case models.ViewGrid, models.ViewList:
		next.Filters.ViewMode = viewMode
	default:
		next.Filters.ViewMode = models.ViewGrid
	}
	return next
}

func (s State) SetPriceRange(min, max string) State {
	next := s.clone()
	next.Filters.PriceRange = models.PriceRange{Min: min, Max: max}
	return next
}

// SetMinRating remplace la note minimale, bornée à [0, 5].
func (s State) SetMinRating(minRating float64) State {
	next := s.clone()
	if minRating < 0 {
		minRating = 0
	}
	if minRating > 5 {
		minRating = 5
	}
	next.Filters.MinRating = minRating
	return next
}

func (s State) ToggleFilters() State {
	next := s.clone()
	next.Filters.ShowFilters = !next.Filters.ShowFilters
	return next
}

// ClearFilters réinitialise catégorie, recherche, bornes de prix et note
// minimale. Le tri, le mode d'affichage et l'ouverture du panneau sont
// volontairement conservés.
func (s State) ClearFilters() State {
	next := s.clone()
	next.Filters.Category = "all"
	next.Filters.SearchQuery = ""
	next.Filters.PriceRange = models.PriceRange{Min: "", Max: ""}
	next.Filters.MinRating = 0
	return next
}
