package validation

import (
	"regexp"
	"strings"
	"time"
)

// stateCodes holds the 50 US states plus DC.
var stateCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {},
	"IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {},
	"MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {},
	"NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {},
	"OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {}, "TN": {},
	"TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {},
	"WY": {}, "DC": {},
}

var (
	dateOfBirthRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phoneRegex       = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)
	phoneCleaner     = strings.NewReplacer(" ", "", "(", "", ")", "", ".", "", "-", "")
)

const (
	minAge = 18
	maxAge = 120
)

// DateOfBirth validates a YYYY-MM-DD date of birth against the current date.
func DateOfBirth(value string) Result {
	return DateOfBirthAt(value, time.Now())
}

// DateOfBirthAt validates a date of birth as of the given reference time.
// The date must be a real calendar date, not in the future, and yield an age
// between 18 and 120 inclusive.
func DateOfBirthAt(value string, now time.Time) Result {
	dob := strings.TrimSpace(value)
	if !dateOfBirthRegex.MatchString(dob) {
		return Invalid("Date of birth must be in YYYY-MM-DD format")
	}

	// time.Parse rejects impossible dates such as 2001-02-30.
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return Invalid("Invalid date of birth")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if birth.After(today) {
		return Invalid("Date of birth cannot be in the future")
	}

	age := ageAt(birth, today)
	if age < minAge {
		return Invalid("You must be at least 18 years old")
	}
	if age > maxAge {
		return Invalid("Date of birth is unrealistically old")
	}

	return Valid()
}

// ageAt computes age in full years, subtracting one when the birthday has not
// yet occurred in the reference year. Comparing (month, day) pairs keeps the
// computation correct across leap years: a Feb 29 birthday counts from Mar 1
// in non-leap years.
func ageAt(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// StateCode validates a two-letter US state code (50 states plus DC),
// case-insensitively.
func StateCode(value string) Result {
	state := strings.ToUpper(strings.TrimSpace(value))
	if _, ok := stateCodes[state]; !ok {
		return Invalid("Use a valid 2-letter US state code")
	}
	return Valid()
}

// NormalizePhoneNumber strips spaces, parentheses, dots and hyphens.
func NormalizePhoneNumber(value string) string {
	return phoneCleaner.Replace(value)
}

// PhoneNumber validates a phone number against an E.164-like pattern after
// normalization: optional leading +, then 8-15 digits not starting with 0.
func PhoneNumber(value string) Result {
	cleaned := NormalizePhoneNumber(value)
	if !phoneRegex.MatchString(cleaned) {
		return Invalid("Enter a valid phone number (E.164, 8-15 digits, may start with +)")
	}
	return Valid()
}
