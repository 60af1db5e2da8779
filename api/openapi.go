// Package api holds the OpenAPI contract of the clickwork HTTP API. The
// models and chi server stubs in pkg/api are generated from it.
package api

import (
	_ "embed"
	"net/http"
)

//go:generate go tool oapi-codegen -config oapi-codegen.yaml openapi.yaml

//go:embed openapi.yaml
var document []byte

// DocumentHandler serves the contract as YAML.
func DocumentHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(document)
	})
}
