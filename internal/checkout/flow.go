package checkout

import (
	"context"
	"time"
)

// Étapes et statuts du parcours de checkout.
const (
	StepPersonal = 1
	StepShipping = 2
	StepPayment  = 3
)

type Status string

const (
	StatusEditing    Status = "editing"
	StatusSubmitting Status = "submitting"
	StatusComplete   Status = "complete"
)

// SubmitErrorMessage est le message générique affiché quand le paiement
// échoue. Aucun détail n'est exposé, le formulaire reste éditable.
const SubmitErrorMessage = "Payment processing failed. Please try again."

// Flow est la machine à états du formulaire de checkout : trois étapes
// linéaires gardées par la validation, puis soumission et complétion.
// Le retour en arrière est toujours permis et ne revalide rien.
type Flow struct {
	Values  FormValues        `json:"values"`
	Errors  map[string]string `json:"errors"`
	Touched map[string]bool   `json:"touched"`
	Step    int               `json:"step"`
	Status  Status            `json:"status"`

	// SubmitError porte le message générique d'un échec de paiement.
	SubmitError string `json:"submitError,omitempty"`

	now func() time.Time
}

// NewFlow démarre un checkout à l'étape 1 avec le formulaire vierge.
// La fonction d'horloge est injectée pour rendre la validation
// d'expiration de carte déterministe en test.
func NewFlow(now func() time.Time) *Flow {
	if now == nil {
		now = time.Now
	}
	return &Flow{
		Values:  InitialValues(),
		Errors:  make(map[string]string),
		Touched: make(map[string]bool),
		Step:    StepPersonal,
		Status:  StatusEditing,
		now:     now,
	}
}

// SetField remplace la valeur d'un champ texte. L'erreur du champ est
// effacée dès que sa valeur change ; les numéros de carte et dates
// d'expiration passent par leur transformation de saisie.
// Ignoré pendant la soumission et après complétion : le formulaire
// n'est éditable qu'en statut "editing".
func (f *Flow) SetField(name, value string) {
	if f.Status != StatusEditing {
		return
	}
	switch name {
	case FieldFirstName:
		f.Values.FirstName = value
	case FieldLastName:
		f.Values.LastName = value
	case FieldEmail:
		f.Values.Email = value
	case FieldPhone:
		f.Values.Phone = value
	case FieldAddress:
		f.Values.Address = value
	case FieldCity:
		f.Values.City = value
	case FieldPostalCode:
		f.Values.PostalCode = value
	case FieldCountry:
		f.Values.Country = value
	case FieldCardNumber:
		f.Values.CardNumber = FormatCardNumber(value)
	case FieldExpiryDate:
		f.Values.ExpiryDate = FormatExpiryDate(value)
	case FieldCVV:
		f.Values.CVV = value
	case FieldCardName:
		f.Values.CardName = value
	default:
		return
	}
	delete(f.Errors, name)
}

// SetAgreeToTerms remplace la case d'acceptation des conditions.
func (f *Flow) SetAgreeToTerms(agree bool) {
	if f.Status != StatusEditing {
		return
	}
	f.Values.AgreeToTerms = agree
	delete(f.Errors, FieldAgreeToTerms)
}

// validateCurrentStep valide l'étape courante. Les champs ne sont
// marqués "touched" que quand la transition est bloquée : une étape
// valide avance sans faire apparaître d'état d'erreur.
func (f *Flow) validateCurrentStep() bool {
	errors := ValidateStep(f.Values, f.Step, f.now())
	if len(errors) == 0 {
		for _, field := range StepFields[f.Step] {
			delete(f.Errors, field)
		}
		return true
	}
	for _, field := range StepFields[f.Step] {
		f.Touched[field] = true
		if msg, ok := errors[field]; ok {
			f.Errors[field] = msg
		} else {
			delete(f.Errors, field)
		}
	}
	return false
}

// Next tente d'avancer à l'étape suivante. La transition n'a lieu que si
// tous les champs de l'étape courante passent la validation.
func (f *Flow) Next() bool {
	if f.Status != StatusEditing || f.Step >= StepPayment {
		return false
	}
	if !f.validateCurrentStep() {
		return false
	}
	f.Step++
	return true
}

// Back recule d'une étape. Toujours permis, sans revalidation.
func (f *Flow) Back() bool {
	if f.Status != StatusEditing || f.Step <= StepPersonal {
		return false
	}
	f.Step--
	return true
}

// BeginSubmit garde la transition vers "submitting" : uniquement depuis
// l'étape paiement, et uniquement si elle passe la validation. Découplé
// de l'appel de paiement lui-même pour que l'appelant puisse relâcher
// son verrou pendant l'encaissement.
func (f *Flow) BeginSubmit() error {
	if f.Status != StatusEditing || f.Step != StepPayment {
		return ErrNotReady
	}
	if !f.validateCurrentStep() {
		return ErrInvalidForm
	}
	f.Status = StatusSubmitting
	f.SubmitError = ""
	return nil
}

// FailSubmit enregistre un refus de paiement : retour à l'étape
// paiement avec le message générique, le formulaire reste éditable
// et la soumission retentable.
func (f *Flow) FailSubmit() {
	f.Status = StatusEditing
	f.Step = StepPayment
	f.SubmitError = SubmitErrorMessage
}

// CompleteSubmit termine le flux après un paiement accepté.
func (f *Flow) CompleteSubmit() {
	f.Status = StatusComplete
}

// Submit soumet le paiement depuis l'étape 3 : validation, appel du
// processeur, puis complétion ou retour à l'étape paiement sans aucun
// effet de bord. En cas de succès, la référence de paiement est
// retournée.
func (f *Flow) Submit(ctx context.Context, processor PaymentProcessor, amount float64) (string, error) {
	if err := f.BeginSubmit(); err != nil {
		return "", err
	}

	ref, err := processor.Process(ctx, f.Values, amount)
	if err != nil {
		f.FailSubmit()
		return "", err
	}

	f.CompleteSubmit()
	return ref, nil
}
