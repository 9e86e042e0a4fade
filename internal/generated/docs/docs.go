// Package docs embeds the OpenAPI description of the HTTP API, validates it
// with kin-openapi and registers it with swag for the Swagger UI.
package docs

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var document []byte

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(document)
}

var registerOnce sync.Once

// JSON returns the raw OpenAPI document.
func JSON() []byte {
	return document
}

// Load parses and validates the OpenAPI document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// Register makes the document available to the Swagger UI handler. It is
// safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{})
	})
}
