package validation

import (
	"regexp"
	"strings"
)

// CommonTldTypoMessage is returned for otherwise well-formed addresses whose
// top-level label is "con", the most common ".com" typo seen in signups.
const CommonTldTypoMessage = "Email domain ends with '.con' - did you mean '.com'?"

const invalidEmailMessage = "Invalid email address"

var (
	// emailLocalRegex covers the atom characters allowed in the local part.
	emailLocalRegex = regexp.MustCompile("^[A-Za-z0-9.!#$%&'*+/=?^_`{|}~-]+$")
	// emailDomainRegex restricts the domain to letters, digits, dots and hyphens.
	emailDomainRegex = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
)

// Email validates an email address. Input with surrounding whitespace is
// rejected rather than trimmed: the caller is expected to send the address
// exactly as it will be stored.
func Email(email string) Result {
	if strings.TrimSpace(email) != email {
		return Invalid(invalidEmailMessage)
	}

	local, domain, found := strings.Cut(email, "@")
	if !found || strings.Contains(domain, "@") {
		return Invalid(invalidEmailMessage)
	}
	if local == "" || domain == "" {
		return Invalid(invalidEmailMessage)
	}

	if strings.Contains(local, "..") || strings.Contains(domain, "..") {
		return Invalid(invalidEmailMessage)
	}

	if !emailLocalRegex.MatchString(local) {
		return Invalid(invalidEmailMessage)
	}
	if !emailDomainRegex.MatchString(domain) {
		return Invalid(invalidEmailMessage)
	}

	if !strings.Contains(domain, ".") {
		return Invalid(invalidEmailMessage)
	}

	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return Invalid(invalidEmailMessage)
		}
	}

	// Only fires once the format is otherwise valid.
	if hasCommonTldTypo(domain) {
		return Invalid(CommonTldTypoMessage)
	}

	return Valid()
}

// hasCommonTldTypo reports whether the domain's top-level label is exactly
// "con" (case-insensitive).
func hasCommonTldTypo(domain string) bool {
	labels := strings.Split(domain, ".")
	tld := labels[len(labels)-1]
	return strings.EqualFold(tld, "con")
}
