// Package guard ensures commands, queries and value objects are only used after
// going through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard when
// the caller passes no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs that must be built by a constructor.
// Its zero value fails validation, so a struct literal that skipped the
// constructor is rejected the first time it is used.
//
//	var ErrQuoteNotConstructed = errors.New("Quote must be created via NewQuote")
//
//	type Quote struct {
//	    carrier carrier.Code
//	    guard   guard.ConstructorGuard
//	}
//
//	func (q Quote) Validate() error {
//	    return q.guard.Validate(ErrQuoteNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
