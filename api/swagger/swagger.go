package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TTMS Admin API",
        "description": "Technology transfer administration: reports, exports, archive and dashboards",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login and current user"},
        {"name": "Reports", "description": "Filtered report pages, statistics and exports"},
        {"name": "Archive", "description": "Password-confirmed archive toggles"},
        {"name": "Dashboard", "description": "Cached admin overview"},
        {"name": "Browse", "description": "Campus and college drill-down"},
        {"name": "System", "description": "Process metrics"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/report/{entity}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Paginated report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/entity"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "campus_id", "in": "query", "type": "string"},
                    {"name": "college_id", "in": "query", "type": "string"},
                    {"name": "date_from", "in": "query", "type": "string", "format": "date"},
                    {"name": "date_to", "in": "query", "type": "string", "format": "date"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "modality_type", "in": "query", "type": "string"},
                    {"name": "project_id", "in": "query", "type": "string"},
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "user_type", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["active", "expired", "expiring_soon", "pending"]},
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "participants_min", "in": "query", "type": "integer"},
                    {"name": "participants_max", "in": "query", "type": "integer"},
                    {"name": "committee_min", "in": "query", "type": "integer"},
                    {"name": "committee_max", "in": "query", "type": "integer"},
                    {"name": "direct_min", "in": "query", "type": "integer"},
                    {"name": "direct_max", "in": "query", "type": "integer"},
                    {"name": "indirect_min", "in": "query", "type": "integer"},
                    {"name": "indirect_max", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string"},
                    {"name": "sort_order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "302": {"description": "Redirect to login"},
                    "403": {"description": "Not an administrator", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown report or identifier", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/report/{entity}/statistics": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/entity"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/report/{entity}/{format}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export report",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf", "text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"$ref": "#/parameters/entity"},
                    {"name": "format", "in": "path", "required": true, "type": "string", "enum": ["pdf", "csv", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "404": {"description": "Unknown report or format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Render failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/{entity}/{id}/archive": {
            "patch": {
                "tags": ["Archive"],
                "summary": "Archive a record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/entity"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ArchiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Password confirmation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Record not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/{entity}/{id}/unarchive": {
            "patch": {
                "tags": ["Archive"],
                "summary": "Restore an archived record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/entity"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ArchiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Password confirmation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Record not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Admin dashboard summary",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/browse/campuses": {
            "get": {
                "tags": ["Browse"],
                "summary": "List campuses with record counts",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/browse/campuses/{campusId}/colleges": {
            "get": {
                "tags": ["Browse"],
                "summary": "List colleges offered on a campus",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "campusId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Campus not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/browse/campuses/{campusId}/colleges/{collegeId}/{entity}": {
            "get": {
                "tags": ["Browse"],
                "summary": "Report page scoped to a campus college",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "campusId", "in": "path", "required": true, "type": "string"},
                    {"name": "collegeId", "in": "path", "required": true, "type": "string"},
                    {"$ref": "#/parameters/entity"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "College not offered on campus", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Process metrics snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "entity": {
            "name": "entity",
            "in": "path",
            "required": true,
            "type": "string",
            "enum": ["projects", "awards", "international-partners", "modalities", "impact-assessments", "resolutions", "users", "audit-logs"]
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string"}
            }
        },
        "ArchiveRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "PaginationLinks": {
            "type": "object",
            "properties": {
                "first": {"type": "string"},
                "prev": {"type": "string"},
                "next": {"type": "string"},
                "last": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "links": {"$ref": "#/definitions/PaginationLinks"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
