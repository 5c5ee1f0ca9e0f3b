package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/meridianfi/banking/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// byResult adapts a Result-returning validator into a jellydator rule so DTOs
// can compose it with Required, Length and friends. The Result's reason becomes
// the rule's error message verbatim.
func byResult(code string, fn func(string) Result) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError(code, "must be a string")
		}
		if s == "" {
			return nil // Let Required handle empty strings
		}
		if res := fn(s); !res.OK() {
			return validation.NewError(code, res.Reason())
		}
		return nil
	})
}

// Rules bridging the field validators into jellydator struct validation.
var (
	EmailRule             = byResult("validation_email", Email)
	PasswordRule          = byResult("validation_password", Password)
	DateOfBirthRule       = byResult("validation_date_of_birth", DateOfBirth)
	StateCodeRule         = byResult("validation_state_code", StateCode)
	PhoneNumberRule       = byResult("validation_phone_number", PhoneNumber)
	AmountRule            = byResult("validation_amount", Amount)
	CardNumberRule        = byResult("validation_card_number", CardNumber)
	RoutingNumberRule     = byResult("validation_routing_number", RoutingNumber)
	BankAccountNumberRule = byResult("validation_bank_account_number", BankAccountNumber)
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
