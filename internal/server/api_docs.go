package server

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// LoadAPIDocs parses and validates the OpenAPI document describing the server routes.
func LoadAPIDocs(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("cannot load the api docs: %w", err)
	}
	err = doc.Validate(ctx)
	if err != nil {
		return nil, fmt.Errorf("the api docs are not valid: %w", err)
	}
	return doc, nil
}
