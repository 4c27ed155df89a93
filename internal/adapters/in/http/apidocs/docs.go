// Package apidocs embeds the OpenAPI description of the ordering HTTP API
// and registers it with swag, so echo-swagger serves it under /swagger/.
package apidocs

import (
	"context"
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var document []byte

// SwaggerInfo is the swag registry entry behind /swagger/doc.json.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/",
	Title:            "Ordering API",
	Description:      "Order management: creation, lifecycle transitions, line items and read models.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  string(document),
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Document returns a copy of the raw embedded document.
func Document() []byte {
	out := make([]byte, len(document))
	copy(out, document)
	return out
}

// Load parses the embedded document and validates it against the OpenAPI 3
// schema.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}
