// Package swagger holds the OpenAPI document served at /swagger.
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/resources": {
            "get": {
                "tags": ["resources"],
                "summary": "List Resources",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Cached resources", "schema": {"type": "array", "items": {"$ref": "#/definitions/resource.EntryInfo"}}}}
            },
            "post": {
                "tags": ["resources"],
                "summary": "Load Resource",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/resources.LoadRequest"}}],
                "responses": {
                    "201": {"description": "Loaded resource", "schema": {"$ref": "#/definitions/resource.EntryInfo"}},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Load failed"}
                }
            }
        },
        "/resources/status": {
            "get": {
                "tags": ["resources"],
                "summary": "Resource Manager Status",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Status", "schema": {"$ref": "#/definitions/resources.Status"}}}
            }
        },
        "/resources/{id}": {
            "get": {
                "tags": ["resources"],
                "summary": "Get Resource",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Cached resource", "schema": {"$ref": "#/definitions/resource.EntryInfo"}},
                    "404": {"description": "Not cached"}
                }
            },
            "delete": {
                "tags": ["resources"],
                "summary": "Unpin Resource",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not pinned"}}
            }
        },
        "/resources/pause": {
            "post": {"tags": ["resources"], "summary": "Pause Resources", "responses": {"200": {"description": "Status", "schema": {"$ref": "#/definitions/resources.Status"}}}}
        },
        "/resources/resume": {
            "post": {"tags": ["resources"], "summary": "Resume Resources", "responses": {"200": {"description": "Status", "schema": {"$ref": "#/definitions/resources.Status"}}}}
        },
        "/resources/flush": {
            "post": {"tags": ["resources"], "summary": "Flush Resources", "responses": {"200": {"description": "Loaded count"}}}
        },
        "/resources/cleanup": {
            "post": {"tags": ["resources"], "summary": "Clean Up Resources", "responses": {"200": {"description": "Cleanup result", "schema": {"$ref": "#/definitions/resources.CleanupResult"}}}}
        },
        "/integrity": {
            "get": {"tags": ["integrity"], "summary": "Run All Integrity Checks", "responses": {"200": {"description": "Combined Report"}}}
        },
        "/integrity/structure": {
            "get": {
                "tags": ["integrity"],
                "summary": "Check Structure",
                "parameters": [{"type": "boolean", "name": "fix", "in": "query"}],
                "responses": {"200": {"description": "Structure Report"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/integrity/catalog": {
            "get": {"tags": ["integrity"], "summary": "Check Catalog Objects", "responses": {"200": {"description": "Catalog Report", "schema": {"$ref": "#/definitions/checks.CatalogReport"}}}}
        },
        "/integrity/schema": {
            "get": {"tags": ["integrity"], "summary": "Check Catalog Schema", "responses": {"200": {"description": "Schema Report", "schema": {"$ref": "#/definitions/checks.SchemaReport"}}}}
        },
        "/integrity/archive": {
            "get": {"tags": ["integrity"], "summary": "Check Expansion Pack", "responses": {"200": {"description": "Archive Report", "schema": {"$ref": "#/definitions/checks.ArchiveReport"}}}}
        }
    },
    "definitions": {
        "resource.EntryInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "ref_count": {"type": "integer"},
                "dirty": {"type": "boolean"}
            }
        },
        "resources.LoadRequest": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "id": {"type": "string"},
                "raw_id": {"type": "integer"},
                "location": {"type": "string"}
            }
        },
        "resources.Status": {
            "type": "object",
            "properties": {
                "entries": {"type": "integer"},
                "paused": {"type": "boolean"},
                "cleanup_policy": {"type": "string"},
                "mipmap_level": {"type": "integer"},
                "kinds": {"type": "array", "items": {"type": "string"}},
                "pinned": {"type": "integer"},
                "driver": {"$ref": "#/definitions/driver.Stats"}
            }
        },
        "resources.CleanupResult": {
            "type": "object",
            "properties": {"evicted": {"type": "integer"}, "error": {"type": "string"}}
        },
        "driver.Stats": {
            "type": "object",
            "properties": {
                "live": {"type": "integer"},
                "created": {"type": "integer"},
                "deleted": {"type": "integer"},
                "bytes": {"type": "integer"}
            }
        },
        "checks.CatalogReport": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "found": {"type": "integer"},
                "missing": {"type": "array", "items": {"type": "object", "properties": {"raw_id": {"type": "integer"}, "object_key": {"type": "string"}}}},
                "unkeyed": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "checks.SchemaReport": {
            "type": "object",
            "properties": {
                "table": {"type": "string"},
                "matched": {"type": "boolean"},
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "type_mismatches": {"type": "array", "items": {"type": "string"}}
            }
        },
        "checks.ArchiveReport": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "entries": {"type": "integer"},
                "bytes": {"type": "integer"},
                "unreadable": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Resource Manager API",
	Description:      "Admin API for the reference-counted resource cache.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
