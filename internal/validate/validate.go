package validate

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRUT checks the modulo-11 check digit of a Chilean RUT. It accepts
// any formatting (dots, dashes, spaces) and lowercase 'k', and returns false
// for anything malformed instead of failing.
func ValidateRUT(rut string) bool {
	var b strings.Builder
	for _, r := range rut {
		if (r >= '0' && r <= '9') || r == 'k' || r == 'K' {
			b.WriteRune(r)
		}
	}
	clean := strings.ToUpper(b.String())
	if len(clean) < 8 || len(clean) > 9 {
		return false
	}

	body := clean[:len(clean)-1]
	verifier := clean[len(clean)-1:]

	sum := 0
	multiplier := 2
	for i := len(body) - 1; i >= 0; i-- {
		if body[i] < '0' || body[i] > '9' {
			return false
		}
		sum += int(body[i]-'0') * multiplier
		if multiplier == 7 {
			multiplier = 2
		} else {
			multiplier++
		}
	}

	mod := 11 - (sum % 11)
	var expected string
	switch mod {
	case 11:
		expected = "0"
	case 10:
		expected = "K"
	default:
		expected = string(rune('0' + mod))
	}
	return verifier == expected
}

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateChileanPhone accepts +56912345678, 56912345678 and 912345678.
func ValidateChileanPhone(phone string) bool {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()
	if len(clean) == 11 && strings.HasPrefix(clean, "569") {
		return true
	}
	if len(clean) == 9 && strings.HasPrefix(clean, "9") {
		return true
	}
	return false
}
