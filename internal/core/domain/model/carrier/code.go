package carrier

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrUnknownCarrier is returned for a Code outside the supported set.
var ErrUnknownCarrier = errors.New("unknown carrier")

// Code identifies a shipping carrier.
type Code int

const (
	// Unknown is the zero value and never a valid carrier.
	Unknown Code = iota
	UPS
	USPS
	FEDEX
)

func getCodeStrings() map[Code]string {
	return map[Code]string{
		Unknown: "UNKNOWN",
		UPS:     "UPS",
		USPS:    "USPS",
		FEDEX:   "FEDEX",
	}
}

// Codes returns every supported carrier in a stable order.
func Codes() []Code {
	return []Code{UPS, USPS, FEDEX}
}

// ParseCode maps the wire name of a carrier to its Code.
//
// Example:
//
//	code, err := carrier.ParseCode("FEDEX")
//	// code == carrier.FEDEX
func ParseCode(s string) (Code, error) {
	for _, code := range Codes() {
		if code.String() == s {
			return code, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("carrier", fmt.Errorf("%w: %q", ErrUnknownCarrier, s))
}

func (c Code) String() string {
	if str, ok := getCodeStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and any value outside the enum.
func (c Code) Validate() error {
	if c == Unknown {
		return fmt.Errorf("%w: %d", ErrUnknownCarrier, int(c))
	}
	if _, ok := getCodeStrings()[c]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCarrier, int(c))
	}
	return nil
}
