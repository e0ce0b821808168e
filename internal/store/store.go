package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"vitrine_back_end/internal/models"
)

// StateTTL est la durée de rétention du panier/favoris dans le store
// clé/valeur (même rétention que le panier Redis historique : 30 jours).
const StateTTL = 30 * 24 * time.Hour

// KV est le collaborateur de persistance : un store clé/valeur minimal.
// Get retourne une chaîne vide (sans erreur) quand la clé est absente.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Publish(ctx context.Context, channel, message string) error
}

// StateKey retourne la clé (et le canal pub/sub) de l'état d'une session.
func StateKey(sessionID string) string {
	return "state:" + sessionID
}

// LastOrderKey retourne la clé de la dernière commande d'une session.
func LastOrderKey(sessionID string) string {
	return "order:last:" + sessionID
}

// Store gère l'état par session : panier et favoris persistés dans le KV,
// filtres gardés uniquement en mémoire (jamais persistés).
type Store struct {
	kv KV

	mu      sync.Mutex
	filters map[string]models.Filters
}

func New(kv KV) *Store {
	return &Store{
		kv:      kv,
		filters: make(map[string]models.Filters),
	}
}

// Load reconstruit l'état d'une session : panier/favoris depuis le KV,
// filtres depuis la mémoire. Une session inconnue donne l'état vide.
func (s *Store) Load(ctx context.Context, sessionID string) (State, error) {
	state := NewState()

	data, err := s.kv.Get(ctx, StateKey(sessionID))
	if err != nil {
		return state, fmt.Errorf("lecture état session: %w", err)
	}
	if data != "" {
		if err := json.Unmarshal([]byte(data), &state); err != nil {
			return NewState(), fmt.Errorf("décodage état session: %w", err)
		}
		if state.Cart == nil {
			state.Cart = []models.CartItem{}
		}
		if state.Favorites == nil {
			state.Favorites = []int{}
		}
	}

	s.mu.Lock()
	if f, ok := s.filters[sessionID]; ok {
		state.Filters = f
	} else {
		state.Filters = models.DefaultFilters()
	}
	s.mu.Unlock()

	return state, nil
}

// Mutate applique une mutation panier/favoris, persiste le nouvel
// instantané puis notifie le canal de la session ("updated") pour la
// synchronisation temps réel.
func (s *Store) Mutate(ctx context.Context, sessionID string, fn func(State) State) (State, error) {
	state, err := s.Load(ctx, sessionID)
	if err != nil {
		return state, err
	}

	next := fn(state)

	data, err := json.Marshal(next)
	if err != nil {
		return state, fmt.Errorf("sérialisation état session: %w", err)
	}
	if err := s.kv.Set(ctx, StateKey(sessionID), string(data), StateTTL); err != nil {
		return state, fmt.Errorf("écriture état session: %w", err)
	}

	s.mu.Lock()
	s.filters[sessionID] = next.Filters
	s.mu.Unlock()

	// Notification best-effort : une erreur pub/sub ne doit pas
	// faire échouer la mutation elle-même.
	_ = s.kv.Publish(ctx, StateKey(sessionID), "updated")

	return next, nil
}

// MutateFilters applique une mutation de filtres, en mémoire uniquement.
func (s *Store) MutateFilters(ctx context.Context, sessionID string, fn func(State) State) (State, error) {
	state, err := s.Load(ctx, sessionID)
	if err != nil {
		return state, err
	}

	next := fn(state)

	s.mu.Lock()
	s.filters[sessionID] = next.Filters
	s.mu.Unlock()

	return next, nil
}

// Filters retourne les filtres courants de la session.
func (s *Store) Filters(sessionID string) models.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.filters[sessionID]; ok {
		return f
	}
	return models.DefaultFilters()
}

// SaveLastOrder persiste la dernière commande de la session.
func (s *Store) SaveLastOrder(ctx context.Context, sessionID string, order models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("sérialisation commande: %w", err)
	}
	if err := s.kv.Set(ctx, LastOrderKey(sessionID), string(data), StateTTL); err != nil {
		return fmt.Errorf("écriture commande: %w", err)
	}
	return nil
}

// LastOrder retourne la dernière commande de la session, ou false si aucune.
func (s *Store) LastOrder(ctx context.Context, sessionID string) (models.Order, bool, error) {
	data, err := s.kv.Get(ctx, LastOrderKey(sessionID))
	if err != nil {
		return models.Order{}, false, fmt.Errorf("lecture commande: %w", err)
	}
	if data == "" {
		return models.Order{}, false, nil
	}

	var order models.Order
	if err := json.Unmarshal([]byte(data), &order); err != nil {
		return models.Order{}, false, fmt.Errorf("décodage commande: %w", err)
	}
	return order, true, nil
}
