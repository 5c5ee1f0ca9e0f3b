// Package service provides account-level services such as account number
// generation.
package service

// NumberGenerator produces candidate account numbers. Generated numbers are
// uniformly random but NOT guaranteed unique; callers must check against
// existing records and retry within a bounded budget.
type NumberGenerator interface {
	Generate() (string, error)
}
