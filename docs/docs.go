// Package docs registers the OpenAPI description served under /swagger/.
// Keep it in step with the @Router annotations in internal/api/handlers;
// TestDocs_CoverEveryAPIRoute in internal/api fails when they drift.
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
        "/admin/housekeeping": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Run the storage cleanup immediately: stale upload temp files and orphaned thumbnails are removed.",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Trigger housekeeping",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HousekeepingReport"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Housekeeping failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/info": {
            "get": {
                "description": "Retrieves general information about the service: name, version, uptime, ffmpeg availability and whether authentication has been set up. This is a public endpoint.",
                "produces": ["application/json"],
                "tags": ["Info"],
                "summary": "Get service information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Info"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Exchange the studio password for a signed admin token valid for two hours.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Studio password", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.tokenResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Invalid password", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Login failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/login/refresh-token": {
            "post": {
                "description": "Exchange a valid token for a new one with a fresh two hour window.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Refresh token",
                "parameters": [
                    {"description": "Current token", "name": "token", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.refreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.tokenResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Token refresh failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/media": {
            "get": {
                "description": "List stored media, newest first. Filter by category (alias \"style\"), type and limit.",
                "produces": ["application/json"],
                "tags": ["Media"],
                "summary": "List media",
                "parameters": [
                    {"type": "string", "description": "Category", "name": "category", "in": "query"},
                    {"type": "string", "description": "Alias for category", "name": "style", "in": "query"},
                    {"type": "string", "description": "image or video", "name": "type", "in": "query"},
                    {"type": "integer", "description": "Maximum number of records", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.MediaRecord"}}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Listing failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/media/categories": {
            "get": {
                "description": "List the categories that currently hold at least one file.",
                "produces": ["application/json"],
                "tags": ["Media"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "500": {"description": "Listing failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/media/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Upload one or more files into a category bucket. Each \"file\" part goes through the upload pipeline in order; the first failure aborts the remaining parts. HEIC/HEIF images are converted to JPEG.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Media"],
                "summary": "Upload media",
                "parameters": [
                    {"type": "string", "description": "Target category (bucket)", "name": "category", "in": "formData", "required": true},
                    {"type": "file", "description": "Media file (repeatable)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UploadResponse"}},
                    "400": {"description": "Missing file or category", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "415": {"description": "Unsupported media type", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Upload failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/media/{category}/{filename}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Remove a stored file and its thumbnail. Deleting a file that does not exist succeeds.",
                "tags": ["Media"],
                "summary": "Delete media",
                "parameters": [
                    {"type": "string", "description": "Category", "name": "category", "in": "path", "required": true},
                    {"type": "string", "description": "Filename", "name": "filename", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Invalid name", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Delete failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/news": {
            "get": {
                "description": "List news posts in insertion order, or newest first with order=desc.",
                "produces": ["application/json"],
                "tags": ["News"],
                "summary": "List news",
                "parameters": [
                    {"type": "string", "description": "asc (default) or desc", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.NewsItem"}}},
                    "400": {"description": "Invalid order", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Listing failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Publish a news post. A non-empty title is required.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["News"],
                "summary": "Create news",
                "parameters": [
                    {"description": "News post", "name": "news", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.NewsCreatePayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.NewsItem"}},
                    "400": {"description": "Invalid request body or missing title", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Create failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/news/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Remove a news post. Unknown IDs succeed.",
                "tags": ["News"],
                "summary": "Delete news",
                "parameters": [
                    {"type": "string", "description": "News ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Delete failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Upload one or more files into a category bucket. Each \"file\" part goes through the upload pipeline in order; the first failure aborts the remaining parts. HEIC/HEIF images are converted to JPEG.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Media"],
                "summary": "Upload media",
                "parameters": [
                    {"type": "string", "description": "Target category (bucket)", "name": "category", "in": "formData", "required": true},
                    {"type": "file", "description": "Media file (repeatable)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UploadResponse"}},
                    "400": {"description": "Missing file or category", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "415": {"description": "Unsupported media type", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Upload failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/visits": {
            "post": {
                "description": "Record a page view. Repeated views of the same path by the same client within 30 minutes are ignored.",
                "consumes": ["application/json"],
                "tags": ["Visits"],
                "summary": "Record a visit",
                "parameters": [
                    {"description": "Visited path", "name": "visit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.visitRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Invalid request body or path", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Recording failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/visits/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Total, per-path and per-day visit counts for the last N days (UTC).",
                "produces": ["application/json"],
                "tags": ["Visits"],
                "summary": "Visit statistics",
                "parameters": [
                    {"type": "integer", "description": "Window in days (1-366, default 30)", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.VisitStats"}},
                    "400": {"description": "Invalid days", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Statistics failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.loginRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "handlers.refreshRequest": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "handlers.tokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "handlers.visitRequest": {
            "type": "object",
            "properties": {"path": {"type": "string"}}
        },
        "models.DayCount": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "day": {"type": "string"}}
        },
        "models.HousekeepingReport": {
            "type": "object",
            "properties": {
                "bytes_freed": {"type": "integer"},
                "message": {"type": "string"},
                "orphan_thumbnails_removed": {"type": "integer"},
                "temp_files_removed": {"type": "integer"}
            }
        },
        "models.Info": {
            "type": "object",
            "properties": {
                "auth_configured": {"type": "boolean"},
                "ffmpeg": {"type": "boolean"},
                "service_name": {"type": "string"},
                "uptime_since": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "models.MediaRecord": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "filename": {"type": "string"},
                "id": {"type": "string"},
                "modified_at": {"type": "string"},
                "size": {"type": "integer"},
                "thumbnail_url": {"type": "string"},
                "type": {"$ref": "#/definitions/models.MediaType"},
                "url": {"type": "string"}
            }
        },
        "models.MediaType": {
            "type": "string",
            "enum": ["image", "video"],
            "x-enum-varnames": ["MediaImage", "MediaVideo"]
        },
        "models.NewsCreatePayload": {
            "type": "object",
            "properties": {"body": {"type": "string"}, "image": {"type": "string"}, "title": {"type": "string"}}
        },
        "models.NewsItem": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "image": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "models.PathCount": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "path": {"type": "string"}}
        },
        "models.UploadResponse": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "files": {"type": "array", "items": {"$ref": "#/definitions/models.MediaRecord"}},
                "message": {"type": "string"}
            }
        },
        "models.VisitStats": {
            "type": "object",
            "properties": {
                "by_day": {"type": "array", "items": {"$ref": "#/definitions/models.DayCount"}},
                "by_path": {"type": "array", "items": {"$ref": "#/definitions/models.PathCount"}},
                "since": {"type": "string"},
                "total": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the token from /api/login.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.4.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "inkhub API",
	Description:      "REST API for the studio website: media uploads, news and visit statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
