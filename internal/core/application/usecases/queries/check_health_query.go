package queries

import (
	"context"
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrCheckHealthQueryIsNotConstructed = errors.New(
	"CheckHealthQuery must be created via NewCheckHealthQuery constructor",
)

// HealthStatus is the result of probing the store.
type HealthStatus string

const (
	ConnectionOK  HealthStatus = "CONNECTION_OK"
	ConnectionBad HealthStatus = "CONNECTION_BAD"
)

// CheckHealthQuery asks whether the order store is reachable.
type CheckHealthQuery struct {
	guard guard.ConstructorGuard
}

func NewCheckHealthQuery() CheckHealthQuery {
	return CheckHealthQuery{guard: guard.NewConstructorGuard()}
}

func (q CheckHealthQuery) Validate() error {
	return q.guard.Validate(ErrCheckHealthQueryIsNotConstructed)
}

// CheckHealthQueryHandler delegates to the store probe.
type CheckHealthQueryHandler struct {
	probe StoreProbe
}

func NewCheckHealthQueryHandler(probe StoreProbe) CheckHealthQueryHandler {
	return CheckHealthQueryHandler{probe: probe}
}

// Handle maps a failed ping to ConnectionBad and returns the ping error
// alongside it so the caller can log the cause.
func (h CheckHealthQueryHandler) Handle(ctx context.Context, query CheckHealthQuery) (HealthStatus, error) {
	if err := query.Validate(); err != nil {
		return ConnectionBad, err
	}
	if err := h.probe.Ping(ctx); err != nil {
		return ConnectionBad, err
	}
	return ConnectionOK, nil
}
