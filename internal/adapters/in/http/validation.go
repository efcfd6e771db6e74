package http

import (
	"context"
	"errors"
	"net/http"

	"fulfillment/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// ValidationErrorType names the part of the request that failed validation.
type ValidationErrorType string

const (
	InvalidQueryParameter ValidationErrorType = "INVALID_QUERY_PARAMETER"
	InvalidURLParameter   ValidationErrorType = "INVALID_URL_PARAMETER"
	InvalidRequestBody    ValidationErrorType = "INVALID_REQUEST_BODY"
)

// ValidationErrorResponse is the 400 body of a request rejected before it
// reaches a command or query.
type ValidationErrorResponse struct {
	Error   ValidationErrorType `json:"error"`
	Details []string            `json:"details"`
}

func newValidationErrorResponse(kind ValidationErrorType, errs ...error) ValidationErrorResponse {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		details = append(details, err.Error())
	}
	return ValidationErrorResponse{Error: kind, Details: details}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(api.Spec)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// RequestValidator checks requests against the OpenAPI document. Requests
// for routes the document does not describe pass through untouched.
type RequestValidator struct {
	router routers.Router
}

func NewRequestValidator(doc *openapi3.T) (*RequestValidator, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	return &RequestValidator{router: router}, nil
}

func (v *RequestValidator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		route, pathParams, err := v.router.FindRoute(req)
		if err != nil {
			return next(c)
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				MultiError:         true,
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}

		if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
			return c.JSON(http.StatusBadRequest, toValidationErrorResponse(err))
		}

		return next(c)
	}
}

// toValidationErrorResponse classifies by the first failing part, in the
// order path, query, body.
func toValidationErrorResponse(err error) ValidationErrorResponse {
	var all []error
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		all = multi
	} else {
		all = []error{err}
	}

	kind := InvalidRequestBody
	rank := 3
	for _, e := range all {
		if k, r := classify(e); r < rank {
			kind, rank = k, r
		}
	}

	return newValidationErrorResponse(kind, all...)
}

func classify(err error) (ValidationErrorType, int) {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) || reqErr.Parameter == nil {
		return InvalidRequestBody, 2
	}
	switch reqErr.Parameter.In {
	case openapi3.ParameterInPath:
		return InvalidURLParameter, 0
	case openapi3.ParameterInQuery:
		return InvalidQueryParameter, 1
	default:
		return InvalidRequestBody, 2
	}
}
