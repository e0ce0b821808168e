package handlers

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"vitrine_back_end/internal/checkout"
	"vitrine_back_end/internal/models"
	"vitrine_back_end/internal/store"
	"vitrine_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// flowTTL est la durée de rétention d'un checkout abandonné : au-delà,
// il est balayé au prochain démarrage de checkout.
const flowTTL = 30 * time.Minute

// checkoutSession porte le flux de checkout d'une session avec son
// propre verrou : deux requêtes de la même session se sérialisent
// entre elles sans bloquer les autres sessions.
type checkoutSession struct {
	mu       sync.Mutex
	flow     *checkout.Flow
	lastSeen time.Time
}

// Flux de checkout en cours, par session. flowsMu ne protège que la
// map ; l'état de chaque flux est protégé par le verrou de sa session.
var (
	flowsMu sync.Mutex
	flows   = make(map[string]*checkoutSession)
)

func currentSession(sessionID string) (*checkoutSession, bool) {
	flowsMu.Lock()
	defer flowsMu.Unlock()
	cs, ok := flows[sessionID]
	if ok {
		cs.lastSeen = time.Now()
	}
	return cs, ok
}

// sweepFlows supprime les checkouts abandonnés depuis plus de flowTTL.
// Appelé sous flowsMu.
func sweepFlows() {
	for id, cs := range flows {
		if time.Since(cs.lastSeen) > flowTTL {
			delete(flows, id)
		}
	}
}

// flowSnapshot construit la réponse sous le verrou de la session : les
// maps d'erreurs et de "touched" sont copiées pour ne jamais être lues
// pendant qu'une autre requête les modifie.
func flowSnapshot(f *checkout.Flow) gin.H {
	errors := make(map[string]string, len(f.Errors))
	for k, v := range f.Errors {
		errors[k] = v
	}
	touched := make(map[string]bool, len(f.Touched))
	for k, v := range f.Touched {
		touched[k] = v
	}
	return gin.H{
		"values":      f.Values,
		"errors":      errors,
		"touched":     touched,
		"step":        f.Step,
		"status":      f.Status,
		"submitError": f.SubmitError,
	}
}

//
// 🟢 POST /api/checkout/start
//
// Démarre (ou redémarre) le checkout. Refusé si le panier est vide.
func StartCheckout(c *gin.Context) {
	sessionID := c.GetString("session_id")

	st, err := stateStore.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(st.Cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	cs := &checkoutSession{flow: checkout.NewFlow(nil), lastSeen: time.Now()}

	flowsMu.Lock()
	sweepFlows()
	flows[sessionID] = cs
	flowsMu.Unlock()

	cs.mu.Lock()
	resp := flowSnapshot(cs.flow)
	cs.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

//
// 🟢 GET /api/checkout
//
func GetCheckout(c *gin.Context) {
	sessionID := c.GetString("session_id")

	cs, ok := currentSession(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun checkout en cours"})
		return
	}

	cs.mu.Lock()
	resp := flowSnapshot(cs.flow)
	cs.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

//
// 🟢 POST /api/checkout/field
//
// Remplace la valeur d'un champ ; son erreur est effacée immédiatement.
func SetCheckoutField(c *gin.Context) {
	sessionID := c.GetString("session_id")

	cs, ok := currentSession(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun checkout en cours"})
		return
	}

	var input struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
		Agree *bool  `json:"agree"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cs.mu.Lock()
	if input.Field == checkout.FieldAgreeToTerms && input.Agree != nil {
		cs.flow.SetAgreeToTerms(*input.Agree)
	} else {
		cs.flow.SetField(input.Field, input.Value)
	}
	resp := flowSnapshot(cs.flow)
	cs.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

//
// 🟢 POST /api/checkout/next
//
// Avance d'une étape si tous les champs de l'étape courante sont valides ;
// sinon reste sur place et marque les champs en erreur comme "touched".
func NextCheckoutStep(c *gin.Context) {
	sessionID := c.GetString("session_id")

	cs, ok := currentSession(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun checkout en cours"})
		return
	}

	cs.mu.Lock()
	advanced := cs.flow.Next()
	resp := flowSnapshot(cs.flow)
	cs.mu.Unlock()

	resp["advanced"] = advanced
	c.JSON(http.StatusOK, resp)
}

//
// 🟢 POST /api/checkout/back
//
// Recule d'une étape. Toujours permis, sans revalidation.
func PrevCheckoutStep(c *gin.Context) {
	sessionID := c.GetString("session_id")

	cs, ok := currentSession(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun checkout en cours"})
		return
	}

	cs.mu.Lock()
	cs.flow.Back()
	resp := flowSnapshot(cs.flow)
	cs.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

//
// 🟢 POST /api/checkout/submit
//
// Soumet le paiement depuis l'étape 3. Le verrou de la session n'est
// pas retenu pendant l'appel du processeur : un encaissement lent ne
// bloque ni les autres sessions ni la lecture de celle-ci. En cas de
// succès : la commande est persistée, le panier vidé et le flux
// terminé. En cas d'échec : message générique, retour à l'étape
// paiement, aucun effet de bord.
func SubmitCheckout(c *gin.Context) {
	sessionID := c.GetString("session_id")

	cs, ok := currentSession(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun checkout en cours"})
		return
	}

	st, err := stateStore.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(st.Cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// Validation et passage en "submitting" sous verrou ; une double
	// soumission concurrente est refusée ici.
	cs.mu.Lock()
	if err := cs.flow.BeginSubmit(); err != nil {
		resp := flowSnapshot(cs.flow)
		cs.mu.Unlock()
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	values := cs.flow.Values
	cs.mu.Unlock()

	ref, err := processor.Process(c.Request.Context(), values, st.CartTotal())

	cs.mu.Lock()
	if err != nil {
		cs.flow.FailSubmit()
		resp := flowSnapshot(cs.flow)
		cs.mu.Unlock()

		log.Printf("❌ Échec paiement session %s: %v", sessionID, err)
		c.JSON(http.StatusPaymentRequired, resp)
		return
	}
	cs.flow.CompleteSubmit()
	cs.mu.Unlock()

	order := models.Order{
		ID: "ORD-" + uuid.NewString(),
		Customer: models.OrderCustomer{
			Name:  strings.TrimSpace(values.FirstName + " " + values.LastName),
			Email: values.Email,
			Phone: values.Phone,
		},
		Shipping: models.OrderShipping{
			Address:    values.Address,
			City:       values.City,
			PostalCode: values.PostalCode,
			Country:    values.Country,
		},
		Items:      st.Cart,
		Total:      st.CartTotal(),
		Status:     models.OrderStatusPaid,
		PaymentRef: ref,
		CreatedAt:  time.Now().UTC(),
	}

	if err := stateStore.SaveLastOrder(c.Request.Context(), sessionID, order); err != nil {
		log.Printf("❌ Erreur persistance commande %s: %v", order.ID, err)
	}

	if _, err := stateStore.Mutate(c.Request.Context(), sessionID, func(s store.State) store.State {
		return s.ClearCart()
	}); err != nil {
		log.Printf("❌ Erreur vidage panier après commande %s: %v", order.ID, err)
	}

	flowsMu.Lock()
	delete(flows, sessionID)
	flowsMu.Unlock()

	// Confirmation par e-mail, best-effort, hors du chemin de réponse
	if utils.EmailConfigured() {
		go func(o models.Order) {
			if err := utils.SendOrderConfirmation(o); err != nil {
				log.Printf("❌ Erreur envoi e-mail commande %s: %v", o.ID, err)
			}
		}(order)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Commande confirmée",
		"order":   order,
	})
}

//
// 🟢 GET /api/orders/last
//
func GetLastOrder(c *gin.Context) {
	sessionID := c.GetString("session_id")

	order, found, err := stateStore.LastOrder(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune commande"})
		return
	}

	c.JSON(http.StatusOK, order)
}
