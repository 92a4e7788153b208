// Package docs embeds the OpenAPI description of the HTTP API.
package docs

import _ "embed"

// SwaggerYAML is the OpenAPI 2.0 document served to the Swagger UI.
//
//go:embed swagger.yaml
var SwaggerYAML []byte
