// Package docs holds the swagger document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@morphergyx.com"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/auth/verify": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Verify token",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuthUserDTO"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/inquiries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Inquiries"],
                "summary": "List inquiries",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                    {"enum": ["new", "contacted", "in-progress", "converted", "closed"], "type": "string", "name": "status", "in": "query"},
                    {"enum": ["biofertilizer", "reactor", "bioplastic", "multiple", "custom"], "type": "string", "name": "interest", "in": "query"},
                    {"enum": ["low", "medium", "high", "urgent"], "type": "string", "name": "priority", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PaginatedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            },
            "post": {
                "tags": ["Inquiries"],
                "summary": "Submit inquiry",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.CreateInquiryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.InquirySummaryDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/inquiries/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Inquiries"],
                "summary": "Inquiry statistics",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InquiryStatsDTO"}}
                }
            }
        },
        "/inquiries/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Inquiries"],
                "summary": "Get inquiry",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InquiryDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Inquiries"],
                "summary": "Update inquiry",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateInquiryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InquiryDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Inquiries"],
                "summary": "Delete inquiry",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/inquiries/{id}/notes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Inquiries"],
                "summary": "Add note",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.AddNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InquiryDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "domain.APIError": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "domain.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "domain.AddNoteRequest": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "domain.AdminRefDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "domain.AuthUserDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "domain.CreateInquiryRequest": {
            "type": "object",
            "properties": {
                "company": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "interest": {"type": "string", "enum": ["biofertilizer", "reactor", "bioplastic", "multiple", "custom"]},
                "volume": {"type": "number"},
                "message": {"type": "string"}
            }
        },
        "domain.GroupCountDTO": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "domain.InquiryDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "company": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "interest": {"type": "string"},
                "volume": {"type": "number"},
                "message": {"type": "string"},
                "status": {"type": "string"},
                "priority": {"type": "string"},
                "source": {"type": "string"},
                "ipAddress": {"type": "string"},
                "userAgent": {"type": "string"},
                "assignedTo": {"$ref": "#/definitions/domain.AdminRefDTO"},
                "notes": {"type": "array", "items": {"$ref": "#/definitions/domain.InquiryNoteDTO"}},
                "followUpDate": {"type": "string"},
                "emailSent": {"type": "boolean"},
                "adminNotified": {"type": "boolean"},
                "ageInDays": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.InquiryNoteDTO": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "addedBy": {"$ref": "#/definitions/domain.AdminRefDTO"},
                "addedAt": {"type": "string"}
            }
        },
        "domain.InquiryStatsDTO": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "new": {"type": "integer"},
                "inProgress": {"type": "integer"},
                "converted": {"type": "integer"},
                "recentWeek": {"type": "integer"},
                "byInterest": {"type": "array", "items": {"$ref": "#/definitions/domain.GroupCountDTO"}},
                "byStatus": {"type": "array", "items": {"$ref": "#/definitions/domain.GroupCountDTO"}}
            }
        },
        "domain.InquirySummaryDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "company": {"type": "string"},
                "email": {"type": "string"},
                "interest": {"type": "string"}
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "domain.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiresAt": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.AuthUserDTO"}
            }
        },
        "domain.PaginatedResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.InquiryDTO"}},
                "pagination": {"$ref": "#/definitions/domain.Pagination"}
            }
        },
        "domain.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "pages": {"type": "integer"}
            }
        },
        "domain.UpdateInquiryRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["new", "contacted", "in-progress", "converted", "closed"]},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                "assignedTo": {"type": "string"},
                "followUpDate": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Bearer token",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Morphergyx Inquiry API",
	Description:      "Captures website inquiries and exposes the admin triage API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
