// Package docs registers the swagger description of the JSON endpoints.
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
        "/": {
            "post": {
                "description": "Validates the submission, stores it and redirects to the full list.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json", "text/html"],
                "tags": ["ideas"],
                "summary": "Submit an idea",
                "parameters": [
                    {"type": "string", "description": "Title (max 100 characters)", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Category (max 50 characters)", "name": "category", "in": "formData", "required": true},
                    {"type": "string", "description": "Description (max 500 characters)", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Image URL", "name": "image", "in": "formData"},
                    {"type": "string", "description": "Link URL", "name": "link", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "Redirect to /ideias"},
                    "400": {"description": "Invalid fields", "schema": {"$ref": "#/definitions/response.ValidationErrorResponse"}},
                    "500": {"description": "Error page"}
                }
            }
        },
        "/api/ideas": {
            "get": {
                "description": "Returns every idea, newest first.",
                "produces": ["application/json"],
                "tags": ["ideas"],
                "summary": "List ideas",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.IdeasResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports store reachability and the number of stored ideas.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.Idea": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "image": {"type": "string"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "link": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "response.IdeasResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "ideas": {"type": "array", "items": {"$ref": "#/definitions/models.Idea"}}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "validation.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "response.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validation.FieldError"}}
            }
        },
        "response.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "ideas_count": {"type": "integer"},
                "timestamp": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Casa Criativa API",
	Description:      "Submit and browse idea cards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
