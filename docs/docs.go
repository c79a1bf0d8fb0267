// Package docs holds the swag-generated Swagger spec for the API. This file
// is normally regenerated by `swag init`; it is checked in here with a
// minimal handwritten spec covering the hide/reveal/capacity routes so the
// swagger UI has something to serve without a generation step.
package docs

import (
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health Check",
                "responses": {"200": {"description": "Service is healthy"}}
            }
        },
        "/capacity": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Estimate image embedding capacity",
                "responses": {"200": {"description": "Successfully calculated embedding capacity."}}
            }
        },
        "/hide/image": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Hide a payload inside an image",
                "responses": {"200": {"description": "Carrier PNG with the payload hidden inside"}}
            }
        },
        "/reveal/image": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Reveal a payload hidden inside an image",
                "responses": {"200": {"description": "Extracted secret file"}}
            }
        },
        "/hide/emoji": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Hide a message inside emoji cover text",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reveal/emoji": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Reveal a message hidden inside emoji cover text",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "pixel-lock API",
	Description:      "Image and emoji steganography: hide and reveal payloads with optional compression and AES-256-GCM encryption.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
