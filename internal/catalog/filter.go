package catalog

import (
	"sort"
	"strconv"
	"strings"

	"vitrine_back_end/internal/models"
)

// FilterAndSort applique les critères au catalogue puis trie le résultat.
// Fonction pure : la liste d'entrée n'est jamais modifiée, le tri est stable
// et "featured" (ou toute clé inconnue) conserve l'ordre d'origine.
func FilterAndSort(products []models.Product, f models.Filters) []models.Product {
	query := strings.ToLower(strings.TrimSpace(f.SearchQuery))
	minOK, minPrice := parseBound(f.PriceRange.Min)
	maxOK, maxPrice := parseBound(f.PriceRange.Max)

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		// Catégorie ("all" ou vide = tout passe)
		if f.Category != "" && f.Category != "all" && p.Category != f.Category {
			continue
		}

		// Recherche texte sur nom + description
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}

		// Bornes de prix
		if minOK && p.Price < minPrice {
			continue
		}
		if maxOK && p.Price > maxPrice {
			continue
		}

		// Note minimale
		if f.MinRating > 0 && p.Rating < f.MinRating {
			continue
		}

		filtered = append(filtered, p)
	}

	switch f.SortBy {
	case models.SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case models.SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case models.SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	}

	return filtered
}

// parseBound interprète une borne de prix saisie en texte.
// Une valeur vide ou non numérique désactive la borne.
func parseBound(s string) (bool, float64) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, 0
	}
	return true, v
}
