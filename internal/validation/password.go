package validation

import (
	"strings"
	"unicode"
)

// passwordMinLength is the minimum accepted password length after trimming.
const passwordMinLength = 12

// passwordSymbols is the punctuation set that satisfies the symbol requirement.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>_-+=\[];'`

// Password validates password strength. All missing requirements are collected
// into a single message so the user can fix everything in one pass, e.g.
// "Password must include at least 12 characters, an uppercase letter".
func Password(password string) Result {
	pwd := strings.TrimSpace(password)

	var issues []string
	if len(pwd) < passwordMinLength {
		issues = append(issues, "at least 12 characters")
	}
	if !containsFunc(pwd, unicode.IsLower) {
		issues = append(issues, "a lowercase letter")
	}
	if !containsFunc(pwd, unicode.IsUpper) {
		issues = append(issues, "an uppercase letter")
	}
	if !containsFunc(pwd, unicode.IsDigit) {
		issues = append(issues, "a number")
	}
	if !strings.ContainsAny(pwd, passwordSymbols) {
		issues = append(issues, "a symbol")
	}

	if len(issues) > 0 {
		return Invalid("Password must include " + strings.Join(issues, ", "))
	}
	return Valid()
}

// containsFunc reports whether any rune in s satisfies f.
func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}
