package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Date de référence injectée : septembre 2026.
var now = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

// validValues retourne un formulaire entièrement valide.
func validValues() FormValues {
	return FormValues{
		FirstName:    "Jean",
		LastName:     "Dupont",
		Email:        "jean.dupont@example.com",
		Phone:        "+33 6 12 34 56 78",
		Address:      "12 rue des Lilas",
		City:         "Paris",
		PostalCode:   "75011",
		Country:      "France",
		CardNumber:   "4111 1111 1111 1111",
		ExpiryDate:   "12/30",
		CVV:          "123",
		CardName:     "Jean Dupont",
		AgreeToTerms: true,
	}
}

func TestLuhn(t *testing.T) {
	assert.True(t, Luhn("4111111111111111"))
	assert.False(t, Luhn("4111111111111112"))
	assert.False(t, Luhn("411111111111111a"))
}

func TestValidValuesPassEveryStep(t *testing.T) {
	v := validValues()
	for step := 1; step <= 3; step++ {
		assert.Empty(t, ValidateStep(v, step, now), "étape %d", step)
	}
}

func TestNameValidation(t *testing.T) {
	v := validValues()

	v.FirstName = "J"
	assert.Equal(t, "First name must be at least 2 characters", ValidateField(v, FieldFirstName, now))

	v.FirstName = ""
	assert.NotEmpty(t, ValidateField(v, FieldFirstName, now))

	v.FirstName = "Jean-Pierre d'Arc"
	assert.Empty(t, ValidateField(v, FieldFirstName, now))

	v.FirstName = "Jean3"
	assert.Equal(t, "Name can only contain letters, spaces, hyphens, and apostrophes", ValidateField(v, FieldFirstName, now))

	v.LastName = "D"
	assert.Equal(t, "Last name must be at least 2 characters", ValidateField(v, FieldLastName, now))
}

func TestEmailValidation(t *testing.T) {
	v := validValues()

	v.Email = "pas-un-email"
	assert.Equal(t, "Please enter a valid email address", ValidateField(v, FieldEmail, now))

	v.Email = "a@b.co"
	assert.Empty(t, ValidateField(v, FieldEmail, now))

	v.Email = ""
	assert.Equal(t, "Email is required", ValidateField(v, FieldEmail, now))
}

func TestPhoneValidation(t *testing.T) {
	v := validValues()

	v.Phone = "12345"
	assert.Equal(t, "Please enter a valid phone number", ValidateField(v, FieldPhone, now))

	v.Phone = "(01) 23-45 67 89"
	assert.Empty(t, ValidateField(v, FieldPhone, now))

	v.Phone = "+32 471 12 34 56"
	assert.Empty(t, ValidateField(v, FieldPhone, now))
}

func TestShippingValidation(t *testing.T) {
	v := validValues()

	v.Address = "abc"
	assert.Equal(t, "Address must be at least 5 characters", ValidateField(v, FieldAddress, now))

	v.City = "P"
	assert.Equal(t, "City name must be at least 2 characters", ValidateField(v, FieldCity, now))

	v.PostalCode = "ab"
	assert.Equal(t, "Please enter a valid postal code", ValidateField(v, FieldPostalCode, now))

	v.PostalCode = "SW1A 1AA"
	assert.Empty(t, ValidateField(v, FieldPostalCode, now))

	v.Country = "Atlantide"
	assert.Equal(t, "Please select a valid country", ValidateField(v, FieldCountry, now))

	v.Country = "Sweden"
	assert.Empty(t, ValidateField(v, FieldCountry, now))
}

func TestCardNumberValidation(t *testing.T) {
	v := validValues()

	// Les espaces de séparation sont acceptées
	v.CardNumber = "4111 1111 1111 1111"
	assert.Empty(t, ValidateField(v, FieldCardNumber, now))

	v.CardNumber = "4111111111111111"
	assert.Empty(t, ValidateField(v, FieldCardNumber, now))

	// Bonne forme mais somme de Luhn invalide
	v.CardNumber = "4111111111111112"
	assert.Equal(t, "Please enter a valid card number", ValidateField(v, FieldCardNumber, now))

	v.CardNumber = "4111"
	assert.Equal(t, "Please enter a valid 16-digit card number", ValidateField(v, FieldCardNumber, now))
}

func TestExpiryDateValidation(t *testing.T) {
	v := validValues()

	// Janvier 2020 est expiré face à toute date postérieure
	v.ExpiryDate = "01/20"
	assert.Equal(t, "Card has expired", ValidateField(v, FieldExpiryDate, now))

	// Le mois courant passe encore
	v.ExpiryDate = "09/26"
	assert.Empty(t, ValidateField(v, FieldExpiryDate, now))

	// Le mois précédent de la même année est expiré
	v.ExpiryDate = "08/26"
	assert.Equal(t, "Card has expired", ValidateField(v, FieldExpiryDate, now))

	v.ExpiryDate = "13/30"
	assert.Equal(t, "Please enter valid expiry date (MM/YY)", ValidateField(v, FieldExpiryDate, now))

	v.ExpiryDate = "1230"
	assert.Equal(t, "Please enter valid expiry date (MM/YY)", ValidateField(v, FieldExpiryDate, now))
}

func TestCVVAndCardNameValidation(t *testing.T) {
	v := validValues()

	v.CVV = "12"
	assert.Equal(t, "CVV must be 3 or 4 digits", ValidateField(v, FieldCVV, now))

	v.CVV = "1234"
	assert.Empty(t, ValidateField(v, FieldCVV, now))

	v.CardName = "J"
	assert.Equal(t, "Name on card must be at least 2 characters", ValidateField(v, FieldCardName, now))
}

func TestAgreeToTermsValidation(t *testing.T) {
	v := validValues()

	v.AgreeToTerms = false
	assert.Equal(t, "You must agree to the terms and conditions", ValidateField(v, FieldAgreeToTerms, now))
}

func TestValidateStepCollectsOnlyItsOwnFields(t *testing.T) {
	v := validValues()
	v.FirstName = ""
	v.CardNumber = ""

	errs := ValidateStep(v, 1, now)
	assert.Contains(t, errs, FieldFirstName)
	assert.NotContains(t, errs, FieldCardNumber)

	errs = ValidateStep(v, 3, now)
	assert.Contains(t, errs, FieldCardNumber)
	assert.NotContains(t, errs, FieldFirstName)
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111111111111111"))
	assert.Equal(t, "4111 1", FormatCardNumber("41111"))
	assert.Equal(t, "4111", FormatCardNumber("4111"))

	// Plafonné à 19 caractères, chiffres excédentaires coupés
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("411111111111111199"))
}

func TestFormatExpiryDate(t *testing.T) {
	assert.Equal(t, "12/30", FormatExpiryDate("1230"))
	assert.Equal(t, "12/", FormatExpiryDate("12"))
	assert.Equal(t, "1", FormatExpiryDate("1"))
	assert.Equal(t, "12/30", FormatExpiryDate("12/30"))
	assert.Equal(t, "09/2", FormatExpiryDate("0 9 2"))
}
