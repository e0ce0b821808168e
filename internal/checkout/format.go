package checkout

import "strings"

// FormatCardNumber regroupe les chiffres par blocs de quatre séparés
// d'une espace, plafonné à 19 caractères (16 chiffres + 3 espaces).
func FormatCardNumber(value string) string {
	digits := strings.ReplaceAll(value, " ", "")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	formatted := b.String()
	if len(formatted) > 19 {
		formatted = formatted[:19]
	}
	return formatted
}

// FormatExpiryDate ne garde que les chiffres et insère "/" après les
// deux premiers (MM/YY).
func FormatExpiryDate(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	clean := digits.String()
	if len(clean) > 4 {
		clean = clean[:4]
	}
	if len(clean) >= 2 {
		return clean[:2] + "/" + clean[2:]
	}
	return clean
}
