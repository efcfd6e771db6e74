// Package carrier describes the closed set of shipping carriers the service can
// quote and book, together with the fixed rate table each one charges.
//
// Carrier codes cross the HTTP boundary as the strings "UPS", "USPS" and
// "FEDEX" and are parsed with ParseCode before they reach the domain. A code
// that is not in the rate table is a programming error, reported as
// ErrUnknownCarrier.
package carrier
