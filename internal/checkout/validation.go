package checkout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Noms des champs du formulaire de checkout.
const (
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldAddress      = "address"
	FieldCity         = "city"
	FieldPostalCode   = "postalCode"
	FieldCountry      = "country"
	FieldCardNumber   = "cardNumber"
	FieldExpiryDate   = "expiryDate"
	FieldCVV          = "cvv"
	FieldCardName     = "cardName"
	FieldAgreeToTerms = "agreeToTerms"
)

// FormValues porte les valeurs saisies sur les trois étapes du checkout.
type FormValues struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`

	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	CardName   string `json:"cardName"`

	AgreeToTerms bool `json:"agreeToTerms"`
}

// InitialValues retourne le formulaire vierge.
func InitialValues() FormValues {
	return FormValues{Country: "Georgia"}
}

// Countries est la liste fermée des pays de livraison acceptés.
var Countries = []string{
	"Georgia",
	"United States",
	"United Kingdom",
	"Canada",
	"Germany",
	"France",
	"Italy",
	"Spain",
	"Netherlands",
	"Sweden",
}

// StepFields associe chaque étape aux champs qu'elle valide.
var StepFields = map[int][]string{
	1: {FieldFirstName, FieldLastName, FieldEmail, FieldPhone},
	2: {FieldAddress, FieldCity, FieldPostalCode, FieldCountry},
	3: {FieldCardNumber, FieldExpiryDate, FieldCVV, FieldCardName, FieldAgreeToTerms},
}

var (
	nameRe   = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^[+]?[0-9\s\-()]{8,20}$`)
	postalRe = regexp.MustCompile(`^[\w\s-]{3,10}$`)
	cardRe   = regexp.MustCompile(`^[0-9]{16}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// Luhn vérifie la somme de contrôle d'un numéro de carte (chiffres seuls) :
// on double un chiffre sur deux depuis la droite, moins 9 si > 9, et la
// somme doit être un multiple de 10.
func Luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateField valide un champ et retourne son message d'erreur,
// ou une chaîne vide si le champ est valide. La date courante est
// injectée pour rendre la validation d'expiration déterministe.
func ValidateField(v FormValues, name string, now time.Time) string {
	switch name {
	case FieldFirstName, FieldLastName:
		label := "First"
		value := v.FirstName
		if name == FieldLastName {
			label = "Last"
			value = v.LastName
		}
		if len(value) < 2 {
			return fmt.Sprintf("%s name must be at least 2 characters", label)
		}
		if len(value) > 50 {
			return fmt.Sprintf("%s name cannot exceed 50 characters", label)
		}
		if !nameRe.MatchString(value) {
			return "Name can only contain letters, spaces, hyphens, and apostrophes"
		}
		return ""

	case FieldEmail:
		if v.Email == "" {
			return "Email is required"
		}
		if !emailRe.MatchString(v.Email) {
			return "Please enter a valid email address"
		}
		return ""

	case FieldPhone:
		if v.Phone == "" {
			return "Phone number is required"
		}
		if !phoneRe.MatchString(v.Phone) {
			return "Please enter a valid phone number"
		}
		return ""

	case FieldAddress:
		if v.Address == "" {
			return "Address is required"
		}
		if len(v.Address) < 5 {
			return "Address must be at least 5 characters"
		}
		return ""

	case FieldCity:
		if v.City == "" {
			return "City is required"
		}
		if len(v.City) < 2 {
			return "City name must be at least 2 characters"
		}
		return ""

	case FieldPostalCode:
		if v.PostalCode == "" {
			return "Postal code is required"
		}
		if !postalRe.MatchString(v.PostalCode) {
			return "Please enter a valid postal code"
		}
		return ""

	case FieldCountry:
		if v.Country == "" {
			return "Country is required"
		}
		for _, c := range Countries {
			if c == v.Country {
				return ""
			}
		}
		return "Please select a valid country"

	case FieldCardNumber:
		if v.CardNumber == "" {
			return "Card number is required"
		}
		clean := strings.ReplaceAll(v.CardNumber, " ", "")
		if !cardRe.MatchString(clean) {
			return "Please enter a valid 16-digit card number"
		}
		if !Luhn(clean) {
			return "Please enter a valid card number"
		}
		return ""

	case FieldExpiryDate:
		if v.ExpiryDate == "" {
			return "Expiry date is required"
		}
		if !expiryRe.MatchString(v.ExpiryDate) {
			return "Please enter valid expiry date (MM/YY)"
		}
		parts := strings.Split(v.ExpiryDate, "/")
		month, _ := strconv.Atoi(parts[0])
		year, _ := strconv.Atoi(parts[1])
		currentYear := now.Year() % 100
		currentMonth := int(now.Month())
		if year < currentYear || (year == currentYear && month < currentMonth) {
			return "Card has expired"
		}
		return ""

	case FieldCVV:
		if v.CVV == "" {
			return "CVV is required"
		}
		if !cvvRe.MatchString(v.CVV) {
			return "CVV must be 3 or 4 digits"
		}
		return ""

	case FieldCardName:
		if v.CardName == "" {
			return "Name on card is required"
		}
		if len(v.CardName) < 2 {
			return "Name on card must be at least 2 characters"
		}
		return ""

	case FieldAgreeToTerms:
		if !v.AgreeToTerms {
			return "You must agree to the terms and conditions"
		}
		return ""
	}

	return ""
}

// ValidateStep valide tous les champs d'une étape et retourne les
// erreurs par champ. Une map vide signifie que l'étape est franchissable.
func ValidateStep(v FormValues, step int, now time.Time) map[string]string {
	errors := make(map[string]string)
	for _, field := range StepFields[step] {
		if msg := ValidateField(v, field, now); msg != "" {
			errors[field] = msg
		}
	}
	return errors
}
