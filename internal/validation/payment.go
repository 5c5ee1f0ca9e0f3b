package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Default funding amount bounds in dollars.
const (
	MinAmount = 0.01
	MaxAmount = 10000.0
)

var (
	// amountRegex accepts canonical decimal strings only: "0" or an integer
	// without a redundant leading zero, optionally followed by 1-2 fraction
	// digits. Rejects "01", "0001.00", ".50", "-0" and scientific notation.
	amountRegex      = regexp.MustCompile(`^(0|[1-9]\d*)(\.\d{1,2})?$`)
	cardNumberRegex  = regexp.MustCompile(`^\d{13,19}$`)
	routingRegex     = regexp.MustCompile(`^\d{9}$`)
	bankAccountRegex = regexp.MustCompile(`^\d{4,17}$`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// CardBrand is the issuing network of a payment card, derived from the
// number's leading digits and length.
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandAmex       CardBrand = "amex"
	CardBrandDiscover   CardBrand = "discover"
	CardBrandJCB        CardBrand = "jcb"
	CardBrandDiners     CardBrand = "diners"
	CardBrandUnknown    CardBrand = "unknown"
)

// Amount validates a funding amount string against the default bounds.
func Amount(value string) Result {
	return AmountBetween(value, MinAmount, MaxAmount)
}

// AmountBetween validates a funding amount string against the given bounds.
// The string must be in canonical decimal form before it is parsed; the bound
// checks then run on the parsed value.
func AmountBetween(value string, min, max float64) Result {
	trimmed := strings.TrimSpace(value)
	if !amountRegex.MatchString(trimmed) {
		return Invalid("Invalid amount")
	}

	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(num, 0) || math.IsNaN(num) {
		return Invalid("Invalid amount")
	}

	if num < min {
		return Invalid(fmt.Sprintf("Amount must be at least $%.2f", min))
	}
	if num > max {
		return Invalid(fmt.Sprintf("Amount cannot exceed $%.2f", max))
	}
	return Valid()
}

// AmountValue validates an already-parsed funding amount against the given bounds.
func AmountValue(num float64, min, max float64) Result {
	if math.IsInf(num, 0) || math.IsNaN(num) {
		return Invalid("Invalid amount")
	}
	if num < min {
		return Invalid(fmt.Sprintf("Amount must be at least $%.2f", min))
	}
	if num > max {
		return Invalid(fmt.Sprintf("Amount cannot exceed $%.2f", max))
	}
	return Valid()
}

// CardNumber validates a payment card number in three ordered stages, each with
// its own user-actionable message: digit format, brand recognition, then the
// Luhn checksum.
func CardNumber(value string) Result {
	cleaned := whitespaceRegex.ReplaceAllString(value, "")
	if !cardNumberRegex.MatchString(cleaned) {
		return Invalid("Card number must be 13-19 digits")
	}

	if DetectCardBrand(cleaned) == CardBrandUnknown {
		return Invalid("Card type not recognized")
	}

	if !luhnValid(cleaned) {
		return Invalid("Invalid card number")
	}
	return Valid()
}

// DetectCardBrand classifies a digit string by prefix and length. Rules are
// evaluated in a fixed priority order; the first match wins, falling through
// to CardBrandUnknown. The input must already be digits only.
func DetectCardBrand(digits string) CardBrand {
	length := len(digits)

	switch {
	case digits[0] == '4' && (length == 13 || length == 16 || length == 19):
		return CardBrandVisa
	case length == 16 && (prefixInRange(digits, 2, 51, 55) || prefixInRange(digits, 4, 2221, 2720)):
		return CardBrandMastercard
	case length == 15 && (hasPrefix(digits, "34") || hasPrefix(digits, "37")):
		return CardBrandAmex
	case length == 16 && (hasPrefix(digits, "6011") ||
		prefixInRange(digits, 3, 644, 649) ||
		hasPrefix(digits, "65") ||
		prefixInRange(digits, 6, 622126, 622925)):
		return CardBrandDiscover
	case length >= 16 && length <= 19 && prefixInRange(digits, 4, 3528, 3589):
		return CardBrandJCB
	case length == 14 && (prefixInRange(digits, 3, 300, 305) ||
		hasPrefix(digits, "309") ||
		hasPrefix(digits, "36") ||
		hasPrefix(digits, "38") ||
		hasPrefix(digits, "39")):
		return CardBrandDiners
	default:
		return CardBrandUnknown
	}
}

// RoutingNumber validates a 9-digit ABA routing number after stripping whitespace.
func RoutingNumber(value string) Result {
	cleaned := whitespaceRegex.ReplaceAllString(value, "")
	if !routingRegex.MatchString(cleaned) {
		return Invalid("Routing number must be 9 digits")
	}
	return Valid()
}

// BankAccountNumber validates a 4-17 digit bank account number after stripping
// whitespace.
func BankAccountNumber(value string) Result {
	cleaned := whitespaceRegex.ReplaceAllString(value, "")
	if !bankAccountRegex.MatchString(cleaned) {
		return Invalid("Account number must be 4-17 digits")
	}
	return Valid()
}

// luhnValid applies the Luhn checksum: double every second digit from the
// right, subtract 9 from results above 9, and check the sum mod 10.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// hasPrefix is strings.HasPrefix under a shorter local name for the brand table.
func hasPrefix(digits, prefix string) bool {
	return strings.HasPrefix(digits, prefix)
}

// prefixInRange reports whether the first n digits, read as an integer, fall
// within [lo, hi]. Returns false when the number is shorter than n digits.
func prefixInRange(digits string, n, lo, hi int) bool {
	if len(digits) < n {
		return false
	}
	prefix, err := strconv.Atoi(digits[:n])
	if err != nil {
		return false
	}
	return prefix >= lo && prefix <= hi
}
