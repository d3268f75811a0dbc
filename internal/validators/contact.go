package validators

import (
	"regexp"
	"strings"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// IsEmailShape checks the local@domain.tld shape only. The domain is not
// resolved.
func IsEmailShape(email string) bool {
	return emailShape.MatchString(email)
}

// StripPhoneSeparators removes spaces, dashes and parentheses.
func StripPhoneSeparators(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

// ToE164 turns a stripped national mobile number into +<cc><number>.
//
//	03001234567   -> +923001234567
//	923001234567  -> +923001234567
//	+923001234567 -> +923001234567
//	3001234567    -> +923001234567
func ToE164(stripped, countryCode string) string {
	n := strings.TrimPrefix(stripped, "+")

	switch {
	case strings.HasPrefix(n, "0"):
		n = countryCode + n[1:]
	case !strings.HasPrefix(n, countryCode):
		n = countryCode + n
	}

	return "+" + n
}
