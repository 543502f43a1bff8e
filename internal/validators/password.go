package validators

import "unicode"

// IsPasswordStrong enforces the registration password policy: at least
// 8 characters with upper, lower, digit and special.
func IsPasswordStrong(pw string) bool {
	if len(pw) < 8 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
