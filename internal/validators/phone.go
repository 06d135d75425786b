package validators

import "strings"

// DigitsOnly remove tudo que não for dígito (máscaras de telefone).
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone aceita fixo (10 dígitos com DDD) ou celular (11 dígitos).
func IsValidPhone(phone string) bool {
	digits := DigitsOnly(phone)
	return len(digits) == 10 || len(digits) == 11
}

// IsValidUsername: minúsculas, dígitos, ponto e underscore, 3..50 chars.
func IsValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_':
		default:
			return false
		}
	}
	return true
}
