// Package order provides the Order aggregate root of the fulfillment service
// and the value objects it owns.
//
// The package includes:
//   - Order: a customer's sales order, its carrier quotes and its booking
//   - Item: one immutable order line (sku, price, weight, quantity)
//   - Quote: the fixed price a carrier asked for shipping the order
//   - Status: the lifecycle Received -> Quoted -> Booked, with Cancelled
//     reachable from Received and Quoted
//
// Key business rules:
//   - An order always has at least one line item
//   - An order holds at most one quote per carrier; a quote is never repriced
//   - Booking requires a quote for the booked carrier and records its price
//   - Booked and Cancelled orders accept no further changes
//
// Transition methods return a new *Order and leave the receiver untouched, so
// a rejected command can never leave a half-applied change behind.
package order
