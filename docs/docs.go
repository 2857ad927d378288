// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

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
        "/rates/known-codes": {
            "get": {
                "description": "Retrieve the currency codes queried on every aggregation cycle",
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "List known currencies",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GetKnownCodesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rates/refresh": {
            "post": {
                "description": "Start an out-of-schedule aggregation cycle without waiting for it",
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "Trigger an aggregation cycle",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.RefreshResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rates/{quote}": {
            "get": {
                "description": "List every stored rate priced in quote",
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "List rates in a quote currency",
                "parameters": [
                    {"type": "string", "example": "BTC", "description": "Quote currency code", "name": "quote", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListByQuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rates/{quote}/{base}": {
            "get": {
                "description": "Get the last stored rate of base priced in quote",
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "Get rate by currency codes",
                "parameters": [
                    {"type": "string", "example": "BTC", "description": "Quote currency code", "name": "quote", "in": "path", "required": true},
                    {"type": "string", "example": "ETH", "description": "Base currency code", "name": "base", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/time": {
            "get": {
                "description": "Latest server time observed in a rate feed response Date header",
                "produces": ["application/json"],
                "tags": ["Time"],
                "summary": "Get trusted time",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TrustedTimeResponse"}},
                    "404": {"description": "no trusted time observed yet", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.GetKnownCodesResponse": {
            "type": "object",
            "properties": {
                "codes": {"type": "array", "items": {"type": "string"}, "example": ["BCH", "ETH", "LTC"]}
            }
        },
        "handler.ListByQuoteResponse": {
            "type": "object",
            "properties": {
                "quote": {"type": "string", "example": "BTC"},
                "rates": {"type": "array", "items": {"$ref": "#/definitions/handler.RateResponse"}}
            }
        },
        "handler.RateResponse": {
            "type": "object",
            "properties": {
                "base": {"type": "string", "example": "ETH"},
                "name": {"type": "string", "example": "Ethereum"},
                "quote": {"type": "string", "example": "BTC"},
                "rate": {"type": "number", "example": 0.06}
            }
        },
        "handler.RefreshResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "scheduled"}
            }
        },
        "handler.TrustedTimeResponse": {
            "type": "object",
            "properties": {
                "time": {"type": "string", "example": "2020-01-01T00:00:00Z"},
                "timestamp": {"type": "integer", "example": 1577836800000}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ratefeed API",
	Description:      "Aggregated currency rates, on-demand refresh and trusted time.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
