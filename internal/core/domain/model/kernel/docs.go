// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - OrderID: the caller-supplied identifier of an order
//   - Cents: a non-negative exact decimal amount of cents
//
// Both are immutable values whose zero value is invalid; they must be built
// through their constructors and are validated again wherever they cross a
// package boundary.
package kernel
