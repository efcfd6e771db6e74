// Package services holds the pure decision logic of the fulfillment service.
//
// The package includes:
//   - CarrierPricer: prices a shipment for a carrier from its fixed rate table
//   - OrderLifecycle: derives the outcome of the create, quote, book and cancel
//     commands from the current order and the command payload
//
// Nothing here reads or writes storage, looks at the clock or blocks. Callers
// load the current order, ask OrderLifecycle for an outcome and persist the
// order carried by a Succeeded outcome. Every other outcome leaves storage as it
// was.
package services
