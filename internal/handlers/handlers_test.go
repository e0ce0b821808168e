package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"vitrine_back_end/internal/checkout"
	"vitrine_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (kv *fakeKV) Get(ctx context.Context, key string) (string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.data[key], nil
}

func (kv *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return nil
}

func (kv *fakeKV) Publish(ctx context.Context, channel, message string) error { return nil }

// testRouterWith câble les handlers sur un store en mémoire, avec une
// session fixée (le middleware JWT est testé à part).
func testRouterWith(t *testing.T, p checkout.PaymentProcessor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	Init(store.New(&fakeKV{data: make(map[string]string)}), p)

	flowsMu.Lock()
	flows = make(map[string]*checkoutSession)
	flowsMu.Unlock()

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("session_id", "session-test") })

	r.GET("/api/products", GetProducts)
	r.GET("/api/cart", GetCart)
	r.POST("/api/cart/add", AddToCart)
	r.PUT("/api/cart/quantity", UpdateQuantity)
	r.POST("/api/favorites/toggle", ToggleFavorite)
	r.PUT("/api/filters/category", SetCategory)
	r.DELETE("/api/filters", ClearFilters)
	r.GET("/api/checkout", GetCheckout)
	r.POST("/api/checkout/start", StartCheckout)
	r.POST("/api/checkout/field", SetCheckoutField)
	r.POST("/api/checkout/next", NextCheckoutStep)
	r.POST("/api/checkout/back", PrevCheckoutStep)
	r.POST("/api/checkout/submit", SubmitCheckout)
	r.GET("/api/orders/last", GetLastOrder)

	return r
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return testRouterWith(t, &checkout.SimulatedProcessor{Delay: 0})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestCartEndpoints(t *testing.T) {
	r := testRouter(t)

	// Panier vide au départ
	w, body := doJSON(t, r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, body["count"])

	// Deux ajouts du même produit = une ligne, quantité 2
	w, _ = doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	w, body = doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, body["count"])
	assert.Len(t, body["items"], 1)

	// Produit inconnu
	w, _ = doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Quantité à zéro : l'article disparaît
	w, body = doJSON(t, r, http.MethodPut, "/api/cart/quantity", `{"productId":1,"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["items"])
}

func TestFavoritesToggleEndpoint(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/favorites/toggle", `{"productId":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["isFavorite"])

	_, body = doJSON(t, r, http.MethodPost, "/api/favorites/toggle", `{"productId":2}`)
	assert.Equal(t, false, body["isFavorite"])
	assert.Empty(t, body["ids"])
}

func TestProductsEndpointAppliesSessionFilters(t *testing.T) {
	r := testRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6.0, body["total"])

	w, _ = doJSON(t, r, http.MethodPut, "/api/filters/category", `{"category":"bags"}`)
	require.Equal(t, http.StatusOK, w.Code)

	_, body = doJSON(t, r, http.MethodGet, "/api/products", "")
	assert.Equal(t, 1.0, body["total"])

	// Réinitialisation des filtres
	w, _ = doJSON(t, r, http.MethodDelete, "/api/filters", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, body = doJSON(t, r, http.MethodGet, "/api/products", "")
	assert.Equal(t, 6.0, body["total"])
}

// fillCheckoutForm remplit les trois étapes avec des valeurs valides et
// laisse le flux sur l'étape paiement, prêt à soumettre.
func fillCheckoutForm(t *testing.T, r *gin.Engine) {
	t.Helper()

	fields := map[string]string{
		"firstName":  "Jean",
		"lastName":   "Dupont",
		"email":      "jean.dupont@example.com",
		"phone":      "+33612345678",
		"address":    "12 rue des Lilas",
		"city":       "Paris",
		"postalCode": "75011",
		"country":    "France",
		"cardNumber": "4111111111111111",
		"expiryDate": "12/30",
		"cvv":        "123",
		"cardName":   "Jean Dupont",
	}
	for name, value := range fields {
		payload, _ := json.Marshal(map[string]string{"field": name, "value": value})
		w, _ := doJSON(t, r, http.MethodPost, "/api/checkout/field", string(payload))
		require.Equal(t, http.StatusOK, w.Code, name)
	}
	w, _ := doJSON(t, r, http.MethodPost, "/api/checkout/field", `{"field":"agreeToTerms","agree":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	for step := 1; step <= 2; step++ {
		_, body := doJSON(t, r, http.MethodPost, "/api/checkout/next", "")
		require.Equal(t, true, body["advanced"], "étape %d", step)
	}
}

func TestCheckoutEndToEnd(t *testing.T) {
	r := testRouter(t)

	// Checkout refusé tant que le panier est vide
	w, _ := doJSON(t, r, http.MethodPost, "/api/checkout/start", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":1}`)

	w, _ = doJSON(t, r, http.MethodPost, "/api/checkout/start", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Étape 1 incomplète : on n'avance pas
	w, body := doJSON(t, r, http.MethodPost, "/api/checkout/next", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["advanced"])
	assert.Equal(t, 1.0, body["step"])

	// Remplir les trois étapes et se placer sur l'étape paiement
	fillCheckoutForm(t, r)

	// Soumission : commande créée, panier vidé
	w, body = doJSON(t, r, http.MethodPost, "/api/checkout/submit", "")
	require.Equal(t, http.StatusOK, w.Code)
	order := body["order"].(map[string]any)
	assert.Equal(t, "paid", order["status"])
	assert.Equal(t, 299.99, order["total"])

	_, body = doJSON(t, r, http.MethodGet, "/api/cart", "")
	assert.Equal(t, 0.0, body["count"])

	// La dernière commande est relisible
	w, body = doJSON(t, r, http.MethodGet, "/api/orders/last", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order["id"], body["id"])
}

// Des requêtes simultanées sur le même checkout (saisie, validation,
// lecture) ne doivent jamais se marcher dessus : les réponses sont
// construites à partir de copies prises sous verrou.
func TestCheckoutHandlesConcurrentRequests(t *testing.T) {
	r := testRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":1}`)
	w, _ := doJSON(t, r, http.MethodPost, "/api/checkout/start", "")
	require.Equal(t, http.StatusOK, w.Code)

	requests := []func() *http.Request{
		func() *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/api/checkout/field", strings.NewReader(`{"field":"email","value":"jean@example.com"}`))
			req.Header.Set("Content-Type", "application/json")
			return req
		},
		func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/api/checkout/next", strings.NewReader(""))
		},
		func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/api/checkout", nil)
		},
	}

	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		build := requests[i%len(requests)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				rec := httptest.NewRecorder()
				r.ServeHTTP(rec, build())
			}
		}()
	}
	wg.Wait()

	// Le flux reste cohérent après la rafale : l'étape 1 est toujours
	// incomplète, donc on n'a jamais avancé
	w, body := doJSON(t, r, http.MethodGet, "/api/checkout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["step"])
}

// gateProcessor signale l'entrée dans le paiement puis attend qu'on le
// libère, pour observer le comportement pendant un paiement en vol.
type gateProcessor struct {
	entered chan struct{}
	release chan struct{}
}

func (p *gateProcessor) Process(ctx context.Context, values checkout.FormValues, amount float64) (string, error) {
	p.entered <- struct{}{}
	<-p.release
	return "PAY-GATE", nil
}

func TestSubmitDoesNotBlockCheckoutWhilePaying(t *testing.T) {
	p := &gateProcessor{entered: make(chan struct{}), release: make(chan struct{})}
	r := testRouterWith(t, p)

	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":1}`)
	w, _ := doJSON(t, r, http.MethodPost, "/api/checkout/start", "")
	require.Equal(t, http.StatusOK, w.Code)
	fillCheckoutForm(t, r)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/checkout/submit", strings.NewReader(""))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		done <- rec
	}()
	<-p.entered

	// Pendant le paiement, le flux reste lisible et se dit "submitting"
	w, body := doJSON(t, r, http.MethodGet, "/api/checkout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "submitting", body["status"])

	// Une double soumission est refusée sans attendre le paiement
	w, _ = doJSON(t, r, http.MethodPost, "/api/checkout/submit", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	close(p.release)
	first := <-done
	require.Equal(t, http.StatusOK, first.Code)
}

// Un checkout abandonné est balayé dès qu'un autre checkout démarre.
func TestAbandonedCheckoutIsSwept(t *testing.T) {
	r := testRouter(t)

	flowsMu.Lock()
	flows["session-abandonnee"] = &checkoutSession{
		flow:     checkout.NewFlow(nil),
		lastSeen: time.Now().Add(-flowTTL - time.Minute),
	}
	flowsMu.Unlock()

	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"productId":1}`)
	w, _ := doJSON(t, r, http.MethodPost, "/api/checkout/start", "")
	require.Equal(t, http.StatusOK, w.Code)

	flowsMu.Lock()
	_, kept := flows["session-abandonnee"]
	flowsMu.Unlock()
	assert.False(t, kept)
}
