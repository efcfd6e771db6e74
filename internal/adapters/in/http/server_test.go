package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesOrder = `{
	"id": "SO-1",
	"customer": "Sally Bob",
	"items": [{"sku": "SHOE-RED-1", "price": 20, "gramsPerItem": 100, "quantity": 1}]
}`

type failingProbe struct{}

func (failingProbe) Ping(context.Context) error { return errors.New("connection refused") }

// brokenUoW fails to begin, which every command treats as a hard fault.
type brokenUoW struct{ commands.OrderUoW }

func (brokenUoW) Begin(context.Context) error { return errors.New("database is down") }

type testApp struct {
	echo     *echo.Echo
	registry *prometheus.Registry
}

type appOptions struct {
	probe      queries.StoreProbe
	uowFactory commands.OrderUoWFactory
}

func newTestApp(t *testing.T, opts appOptions) testApp {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	uowFactory := opts.uowFactory
	if uowFactory == nil {
		uowFactory = commands.FuncOrderUoWFactory(func() commands.OrderUoW {
			return factory.Create()
		})
	}
	probe := opts.probe
	if probe == nil {
		probe = store
	}

	lifecycle := services.NewOrderLifecycle(services.NewCarrierPricer())
	handlers := httpadapter.Handlers{
		CreateOrder: commands.NewCreateOrderCommandHandler(uowFactory, lifecycle),
		CreateQuote: commands.NewCreateQuoteCommandHandler(uowFactory, lifecycle),
		BookCarrier: commands.NewBookCarrierCommandHandler(uowFactory, lifecycle),
		CancelOrder: commands.NewCancelOrderCommandHandler(uowFactory, lifecycle),
		ListOrders:  queries.NewListOrdersQueryHandler(store),
		CheckHealth: queries.NewCheckHealthQueryHandler(probe),
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	metrics := httpadapter.NewMetrics(registry, registry)
	server := httpadapter.NewServer(handlers, httpadapter.BuildInfo{BuildNumber: "42", CommitHash: "abc123"}, metrics, logger)

	doc, err := httpadapter.LoadSpec(context.Background())
	require.NoError(t, err)

	e, err := httpadapter.NewRouter(server, doc, metrics, logger)
	require.NoError(t, err)

	return testApp{echo: e, registry: registry}
}

func (a testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestScenario_CreateQuoteBook(t *testing.T) {
	app := newTestApp(t, appOptions{})

	rec := app.do(t, http.MethodPost, "/orders", salesOrder)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"outcome": "SUCCESS",
		"order": {
			"id": "SO-1",
			"customer": "Sally Bob",
			"items": [{"sku": "SHOE-RED-1", "price": 20, "gramsPerItem": 100, "quantity": 1}],
			"status": "RECEIVED",
			"quotes": []
		}
	}`, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/orders/SO-1/quotes", `{"carriers": ["UPS", "USPS", "FEDEX"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"outcome": "SUCCESS",
		"order": {
			"id": "SO-1",
			"customer": "Sally Bob",
			"items": [{"sku": "SHOE-RED-1", "price": 20, "gramsPerItem": 100, "quantity": 1}],
			"status": "QUOTED",
			"quotes": [
				{"carrier": "UPS", "priceCents": 805},
				{"carrier": "USPS", "priceCents": 1052},
				{"carrier": "FEDEX", "priceCents": 1003}
			]
		}
	}`, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/orders/SO-1/bookings", `{"carrier": "UPS"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "SUCCESS", body["outcome"])
	booked := body["order"].(map[string]any)
	assert.Equal(t, "BOOKED", booked["status"])
	assert.Equal(t, "UPS", booked["carrierBooked"])
	assert.InDelta(t, 805, booked["carrierPricePaid"], 0)

	t.Run("booked orders are closed", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/orders/SO-1/bookings", `{"carrier": "UPS"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ORDER_ALREADY_BOOKED", decode(t, rec)["outcome"])

		rec = app.do(t, http.MethodPost, "/orders/SO-1/quotes", `{"carriers": ["FEDEX"]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "ORDER_ALREADY_BOOKED", body["outcome"])
		assert.Len(t, body["order"].(map[string]any)["quotes"], 3)

		rec = app.do(t, http.MethodPost, "/orders/SO-1/cancellations", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ORDER_ALREADY_BOOKED", decode(t, rec)["outcome"])
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("existing id returns the stored order with 200", func(t *testing.T) {
		app := newTestApp(t, appOptions{})
		require.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/orders", salesOrder).Code)

		rec := app.do(t, http.MethodPost, "/orders",
			`{"id": "SO-1", "customer": "Someone Else", "items": [{"sku": "X", "price": 1, "gramsPerItem": 1, "quantity": 1}]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "ORDER_ALREADY_EXISTS", body["outcome"])
		assert.Equal(t, "Sally Bob", body["order"].(map[string]any)["customer"])
	})

	t.Run("empty items are rejected with 400", func(t *testing.T) {
		app := newTestApp(t, appOptions{})

		rec := app.do(t, http.MethodPost, "/orders", `{"id": "SO-2", "customer": "Sally Bob", "items": []}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"outcome": "ORDER_HAS_NO_LINE_ITEMS"}`, rec.Body.String())

		list := decode(t, app.do(t, http.MethodGet, "/orders", ""))
		assert.Empty(t, list["orders"])
	})

	t.Run("blank customer is a client error", func(t *testing.T) {
		app := newTestApp(t, appOptions{})

		for _, customer := range []string{"   ", `\t\n`} {
			body := `{"id": "SO-4", "customer": "` + customer + `", "items": [{"sku": "A", "price": 1, "gramsPerItem": 1, "quantity": 1}]}`
			rec := app.do(t, http.MethodPost, "/orders", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Equal(t, "INVALID_REQUEST_BODY", decode(t, rec)["error"], body)
		}

		list := decode(t, app.do(t, http.MethodGet, "/orders", ""))
		assert.Empty(t, list["orders"])
	})

	t.Run("malformed bodies never reach the command", func(t *testing.T) {
		app := newTestApp(t, appOptions{})

		for _, body := range []string{
			`{"customer": "Sally Bob", "items": []}`,
			`{"id": "SO-3", "customer": "Sally Bob", "items": [{"sku": "A", "price": 1, "gramsPerItem": -1, "quantity": 1}]}`,
			`{"id": "SO-3", "customer": "Sally Bob", "items": "none"}`,
			`not json`,
		} {
			rec := app.do(t, http.MethodPost, "/orders", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Equal(t, "INVALID_REQUEST_BODY", decode(t, rec)["error"], body)
			assert.NotEmpty(t, decode(t, rec)["details"], body)
		}
	})
}

func TestCreateQuote(t *testing.T) {
	t.Run("unknown order is 404", func(t *testing.T) {
		app := newTestApp(t, appOptions{})

		rec := app.do(t, http.MethodPost, "/orders/999/quotes", `{"carriers": ["UPS"]}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"outcome": "ORDER_NOT_FOUND"}`, rec.Body.String())
	})

	t.Run("re-quoting a carrier returns the conflicting quote", func(t *testing.T) {
		app := newTestApp(t, appOptions{})
		app.do(t, http.MethodPost, "/orders", salesOrder)
		app.do(t, http.MethodPost, "/orders/SO-1/quotes", `{"carriers": ["USPS"]}`)

		rec := app.do(t, http.MethodPost, "/orders/SO-1/quotes", `{"carriers": ["FEDEX", "USPS"]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "CARRIER_ALREADY_QUOTED", body["outcome"])
		assert.Equal(t, map[string]any{"carrier": "USPS", "priceCents": float64(1052)}, body["quote"])
		assert.Len(t, body["order"].(map[string]any)["quotes"], 1)
	})

	t.Run("cancelled orders cannot be quoted", func(t *testing.T) {
		app := newTestApp(t, appOptions{})
		app.do(t, http.MethodPost, "/orders", salesOrder)
		app.do(t, http.MethodPost, "/orders/SO-1/cancellations", "")

		rec := app.do(t, http.MethodPost, "/orders/SO-1/quotes", `{"carriers": ["UPS"]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"outcome": "INVALID_ORDER_STATUS", "expected": "RECEIVED", "actual": "CANCELLED"}`, rec.Body.String())
	})

	t.Run("invalid carriers are rejected by the schema", func(t *testing.T) {
		app := newTestApp(t, appOptions{})

		for _, body := range []string{`{"carriers": []}`, `{"carriers": ["DHL"]}`, `{}`} {
			rec := app.do(t, http.MethodPost, "/orders/SO-1/quotes", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Equal(t, "INVALID_REQUEST_BODY", decode(t, rec)["error"], body)
		}
	})
}

func TestBookCarrier(t *testing.T) {
	t.Run("carrier without quote is NO_MATCHING_QUOTE", func(t *testing.T) {
		app := newTestApp(t, appOptions{})
		app.do(t, http.MethodPost, "/orders", salesOrder)
		app.do(t, http.MethodPost, "/orders/SO-1/quotes", `{"carriers": ["USPS", "FEDEX"]}`)

		rec := app.do(t, http.MethodPost, "/orders/SO-1/bookings", `{"carrier": "UPS"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{
			"outcome": "NO_MATCHING_QUOTE",
			"quotes": [
				{"carrier": "USPS", "priceCents": 1052},
				{"carrier": "FEDEX", "priceCents": 1003}
			]
		}`, rec.Body.String())

		list := decode(t, app.do(t, http.MethodGet, "/orders?status=QUOTED", ""))
		assert.Len(t, list["orders"], 1)
	})

	t.Run("received order without quotes lists no quotes", func(t *testing.T) {
		app := newTestApp(t, appOptions{})
		app.do(t, http.MethodPost, "/orders", salesOrder)

		rec := app.do(t, http.MethodPost, "/orders/SO-1/bookings", `{"carrier": "UPS"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"outcome": "NO_MATCHING_QUOTE", "quotes": []}`, rec.Body.String())
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		app := newTestApp(t, appOptions{})

		rec := app.do(t, http.MethodPost, "/orders/999/bookings", `{"carrier": "UPS"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"outcome": "ORDER_NOT_FOUND"}`, rec.Body.String())
	})
}

func TestCancelOrder(t *testing.T) {
	app := newTestApp(t, appOptions{})
	app.do(t, http.MethodPost, "/orders", salesOrder)

	rec := app.do(t, http.MethodPost, "/orders/SO-1/cancellations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CANCELLED", decode(t, rec)["order"].(map[string]any)["status"])

	rec = app.do(t, http.MethodPost, "/orders/SO-1/cancellations", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"outcome": "INVALID_ORDER_STATUS", "expected": "RECEIVED", "actual": "CANCELLED"}`, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/orders/404/cancellations", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrders(t *testing.T) {
	app := newTestApp(t, appOptions{})

	rec := app.do(t, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orders": []}`, rec.Body.String())

	for _, id := range []string{"B", "A", "C"} {
		body := strings.Replace(salesOrder, "SO-1", id, 1)
		require.Equal(t, http.StatusOK, app.do(t, http.MethodPost, "/orders", body).Code)
	}
	app.do(t, http.MethodPost, "/orders/A/quotes", `{"carriers": ["UPS"]}`)

	orders := decode(t, app.do(t, http.MethodGet, "/orders", ""))["orders"].([]any)
	require.Len(t, orders, 3)
	assert.Equal(t, "B", orders[0].(map[string]any)["id"])
	assert.Equal(t, "A", orders[1].(map[string]any)["id"])
	assert.Equal(t, "C", orders[2].(map[string]any)["id"])

	received := decode(t, app.do(t, http.MethodGet, "/orders?status=RECEIVED", ""))["orders"].([]any)
	assert.Len(t, received, 2)

	rec = app.do(t, http.MethodGet, "/orders?status=SHIPPED", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_QUERY_PARAMETER", decode(t, rec)["error"])
}

func TestGetHealth(t *testing.T) {
	t.Run("reachable store", func(t *testing.T) {
		rec := newTestApp(t, appOptions{}).do(t, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"buildNumber": "42", "commitHash": "abc123"}`, rec.Body.String())
	})

	t.Run("unreachable store", func(t *testing.T) {
		rec := newTestApp(t, appOptions{probe: failingProbe{}}).do(t, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"buildNumber": "42", "commitHash": "abc123"}`, rec.Body.String())
	})
}

func TestHardFaultsAreInternalErrors(t *testing.T) {
	app := newTestApp(t, appOptions{
		uowFactory: commands.FuncOrderUoWFactory(func() commands.OrderUoW { return brokenUoW{} }),
	})

	rec := app.do(t, http.MethodPost, "/orders", salesOrder)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "INTERNAL_ERROR"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "database is down")
}

func TestMetricsAndRequestID(t *testing.T) {
	app := newTestApp(t, appOptions{})

	rec := app.do(t, http.MethodPost, "/orders/999/quotes", `{"carriers": ["UPS"]}`)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = app.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `order_command_outcomes_total{command="quote",outcome="ORDER_NOT_FOUND"} 1`)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="POST",path="/orders/:orderId/quotes",status="404"} 1`)
}

func TestSwaggerDocument(t *testing.T) {
	app := newTestApp(t, appOptions{})

	rec := app.do(t, http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/orders/{orderId}/quotes")
}
