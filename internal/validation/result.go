// Package validation implements the field validators used by signup and funding
// flows. Validators return a two-variant Result rather than an error: a failed
// check is an expected outcome the caller shows to the end user, not a fault.
package validation

// Result is the outcome of a field validation: either valid, or invalid with a
// user-displayable reason. Exactly one of the two holds.
type Result struct {
	ok     bool
	reason string
}

// Valid returns a successful validation result.
func Valid() Result {
	return Result{ok: true}
}

// Invalid returns a failed validation result with the given reason.
// The reason is surfaced to the end user as-is.
func Invalid(reason string) Result {
	return Result{reason: reason}
}

// OK reports whether the validation succeeded.
func (r Result) OK() bool {
	return r.ok
}

// Reason returns the failure reason, or the empty string for a valid result.
func (r Result) Reason() string {
	return r.reason
}
