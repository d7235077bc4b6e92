package docs

import _ "embed"

// OpenAPI содержит описание HTTP API сервера.
//
//go:embed openapi.yaml
var OpenAPI []byte
