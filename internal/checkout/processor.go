package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

var (
	// ErrNotReady : soumission tentée hors de l'étape paiement.
	ErrNotReady = errors.New("checkout: soumission hors de l'étape paiement")
	// ErrInvalidForm : l'étape paiement ne passe pas la validation.
	ErrInvalidForm = errors.New("checkout: formulaire invalide")
	// ErrPaymentDeclined : refus simulé du paiement.
	ErrPaymentDeclined = errors.New("checkout: paiement refusé")
)

// PaymentProcessor encaisse le montant du panier et retourne une
// référence de paiement. C'est la seule opération asynchrone du
// checkout : pas de retry, pas d'annulation, pas d'état partiel.
type PaymentProcessor interface {
	Process(ctx context.Context, values FormValues, amount float64) (string, error)
}

// SimulatedProcessor simule l'appel de paiement par un simple délai,
// comme la maquette d'origine. Decline force le refus (utile en test
// et via SIMULATED_PAYMENT_DECLINE en dev).
type SimulatedProcessor struct {
	Delay   time.Duration
	Decline bool
}

func NewSimulatedProcessor() *SimulatedProcessor {
	return &SimulatedProcessor{Delay: 2 * time.Second}
}

func (p *SimulatedProcessor) Process(ctx context.Context, values FormValues, amount float64) (string, error) {
	if p.Delay > 0 {
		time.Sleep(p.Delay)
	}
	if p.Decline {
		return "", ErrPaymentDeclined
	}
	return "SIM-" + time.Now().UTC().Format("20060102150405"), nil
}

// StripeProcessor crée un PaymentIntent Stripe pour le montant du
// panier. Utilisé uniquement quand STRIPE_SECRET_KEY est configurée.
type StripeProcessor struct{}

func (p *StripeProcessor) Process(ctx context.Context, values FormValues, amount float64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"customer_name":  strings.TrimSpace(values.FirstName + " " + values.LastName),
			"customer_email": values.Email,
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ID, nil
}
