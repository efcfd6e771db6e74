package http

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// specDoc serves the OpenAPI document to the swagger UI.
type specDoc struct {
	json string
}

func (d specDoc) ReadDoc() string {
	return d.json
}

// RegisterSwagger publishes doc under swag's default instance. The UI loads
// it from /swagger/doc.json.
func RegisterSwagger(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if swag.GetSwagger(swag.Name) == nil {
		swag.Register(swag.Name, specDoc{json: string(raw)})
	}
	return nil
}

func swaggerHandler() echo.HandlerFunc {
	return echoSwagger.WrapHandler
}
