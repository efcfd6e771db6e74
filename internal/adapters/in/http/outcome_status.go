package http

import (
	"errors"
	"fmt"
	"net/http"

	"fulfillment/internal/core/domain/services"
)

// ErrUnexpectedOutcome is returned for an outcome a command cannot produce.
var ErrUnexpectedOutcome = errors.New("unexpected outcome")

func unexpectedOutcome(command string, outcome services.Outcome) error {
	return fmt.Errorf("%w: %s returned %T", ErrUnexpectedOutcome, command, outcome)
}

func createStatus(outcome services.CreateOutcome) (int, error) {
	switch outcome.(type) {
	case services.Succeeded, services.OrderAlreadyExists:
		return http.StatusOK, nil
	case services.OrderHasNoLineItems:
		return http.StatusBadRequest, nil
	default:
		return 0, unexpectedOutcome("create", outcome)
	}
}

func quoteStatus(outcome services.QuoteOutcome) (int, error) {
	switch outcome.(type) {
	case services.Succeeded:
		return http.StatusOK, nil
	case services.OrderNotFound:
		return http.StatusNotFound, nil
	case services.OrderAlreadyBooked, services.InvalidOrderStatus, services.CarrierAlreadyQuoted:
		return http.StatusBadRequest, nil
	default:
		return 0, unexpectedOutcome("quote", outcome)
	}
}

func bookStatus(outcome services.BookOutcome) (int, error) {
	switch outcome.(type) {
	case services.Succeeded:
		return http.StatusOK, nil
	case services.OrderNotFound:
		return http.StatusNotFound, nil
	case services.OrderAlreadyBooked, services.InvalidOrderStatus, services.NoMatchingQuote:
		return http.StatusBadRequest, nil
	default:
		return 0, unexpectedOutcome("book", outcome)
	}
}

func cancelStatus(outcome services.CancelOutcome) (int, error) {
	switch outcome.(type) {
	case services.Succeeded:
		return http.StatusOK, nil
	case services.OrderNotFound:
		return http.StatusNotFound, nil
	case services.OrderAlreadyBooked, services.InvalidOrderStatus:
		return http.StatusBadRequest, nil
	default:
		return 0, unexpectedOutcome("cancel", outcome)
	}
}

// toOutcomeResponse renders the payload of any outcome variant.
func toOutcomeResponse(outcome services.Outcome) (OutcomeResponse, error) {
	resp := OutcomeResponse{Outcome: string(outcome.Tag())}

	switch o := outcome.(type) {
	case services.Succeeded:
		resp.Order = toOrderResponse(o.Order)
	case services.OrderAlreadyExists:
		resp.Order = toOrderResponse(o.Order)
	case services.OrderAlreadyBooked:
		resp.Order = toOrderResponse(o.Order)
	case services.CarrierAlreadyQuoted:
		resp.Quote = toQuoteResponse(o.Quote)
		resp.Order = toOrderResponse(o.Order)
	case services.NoMatchingQuote:
		quotes := toQuoteResponses(o.Quotes)
		resp.Quotes = &quotes
	case services.InvalidOrderStatus:
		resp.Expected = o.Expected.String()
		resp.Actual = o.Actual.String()
	case services.OrderHasNoLineItems, services.OrderNotFound:
	default:
		return OutcomeResponse{}, unexpectedOutcome("render", outcome)
	}

	return resp, nil
}
