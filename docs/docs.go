// Package docs registers the OpenAPI document served at /swagger/*any.
// The document is maintained by hand; keep it in sync with the handler
// annotations when routes change.
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
        "/guestbook": {
            "get": {
                "produces": ["application/json"],
                "tags": ["guestbook"],
                "summary": "List guestbook entries",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["guestbook"],
                "summary": "Submit a guestbook entry",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/guestbook/validate/field": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "Live-validate a single form field",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/guestbook/validate/file": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "Live-validate a file pick",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/guestbook/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["moderation"],
                "summary": "Load an entry for editing",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["guestbook"],
                "summary": "Update a guestbook entry",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/guestbook/{id}/delete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["moderation"],
                "summary": "Start deleting an entry",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/guestbook/{id}/delete/confirm": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["moderation"],
                "summary": "Confirm deleting an entry",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/guestbook/{id}/delete/cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["moderation"],
                "summary": "Cancel a pending delete",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/uploads": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Upload a file for a pending submission",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Guestbook API",
	Description:      "Guestbook entry submission, validation, and moderation service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
