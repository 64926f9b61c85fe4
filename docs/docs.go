// Package docs holds the OpenAPI description served at /swagger. Run
// `swag init -g cmd/api/main.go` to regenerate the paths from handler annotations.
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
        "/antibodies": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    },
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Lists antibodies of the active lab with vial counts and low stock flags",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Antibodies"
                ],
                "summary": "List antibodies",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Search target, fluorochrome, clone, vendor or catalog number",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "enum": [
                            "ruo",
                            "asr",
                            "ivd"
                        ],
                        "description": "Filter by designation",
                        "name": "designation",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Include archived antibodies",
                        "name": "includeInactive",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "enum": [
                            "target",
                            "fluorochrome",
                            "clone",
                            "vendor",
                            "createdAt",
                            "updatedAt"
                        ],
                        "description": "Sort field",
                        "name": "sortBy",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "enum": [
                            "asc",
                            "desc"
                        ],
                        "default": "desc",
                        "description": "Sort order",
                        "name": "sortOrder",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.AntibodyDTO"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates an antibody; an unknown fluorochrome is added to the lab's list automatically",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Antibodies"
                ],
                "summary": "Create antibody",
                "parameters": [
                    {
                        "description": "Antibody",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateAntibodyRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.AntibodyDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/antibodies/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    },
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Antibodies"
                ],
                "summary": "Get antibody",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Antibody ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.AntibodyDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Partial update. A threshold of -1 clears it and a stabilityDays of 0 clears the open-vial stability.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Antibodies"
                ],
                "summary": "Update antibody",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Antibody ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Changes",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateAntibodyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.AntibodyDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/antibodies/{id}/archive": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Antibodies"
                ],
                "summary": "Archive antibody",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Antibody ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.AntibodyDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/audit": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    },
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Returns a page of audit entries for the active lab, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Audit"
                ],
                "summary": "List audit logs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by entity type",
                        "name": "entityType",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by entity ID",
                        "name": "entityId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by action",
                        "name": "action",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by user ID",
                        "name": "userId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "First day or month included (YYYY-MM-DD or YYYY-MM)",
                        "name": "dateFrom",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Last day or month included (YYYY-MM-DD or YYYY-MM)",
                        "name": "dateTo",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 1,
                        "description": "Page number",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 50,
                        "description": "Page size (max 200)",
                        "name": "pageSize",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/domain.PaginatedResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/domain.AuditLogDTO"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/audit/entity/{entityType}/{entityId}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Audit"
                ],
                "summary": "Get entity history",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "lab",
                            "user",
                            "fluorochrome",
                            "antibody",
                            "lot",
                            "vial",
                            "storage_unit",
                            "document",
                            "ticket"
                        ],
                        "description": "Entity type",
                        "name": "entityType",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Entity ID",
                        "name": "entityId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.AuditLogDTO"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/audit/export": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Downloads the filtered entries as an XLSX workbook",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "Audit"
                ],
                "summary": "Export audit logs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by entity type",
                        "name": "entityType",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by entity ID",
                        "name": "entityId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by action",
                        "name": "action",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by user ID",
                        "name": "userId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "First day or month included",
                        "name": "dateFrom",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Last day or month included",
                        "name": "dateTo",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/audit/range": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns the earliest and latest months with entries, for the month picker",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Audit"
                ],
                "summary": "Get audit month range",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.AuditRangeDTO"
                        }
                    }
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Changes the caller's password and clears the must-change flag",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Change password",
                "parameters": [
                    {
                        "description": "Passwords",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.ChangePasswordRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Exchanges email and password for a bearer token",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Lab suspended",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Records the logout; tokens are stateless and expire on their own",
                "tags": [
                    "Auth"
                ],
                "summary": "Log out",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    },
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Returns the authenticated user together with the settings of their lab",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Get current user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MeDTO"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/auth/users": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists the users of the active lab. Super admins without a selected lab see every user.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "List users",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Search by name or email",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "enum": [
                            "super_admin",
                            "lab_admin",
                            "supervisor",
                            "tech",
                            "read_only"
                        ],
                        "description": "Filter by role",
                        "name": "role",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Include deactivated users",
                        "name": "includeInactive",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.UserDTO"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates a user with a generated temporary password that must be changed at first login",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "Create user",
                "parameters": [
                    {
                        "description": "User",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateUserRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.UserWithPasswordDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/auth/users/{id}": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "Update user",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Changes",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateUserRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.UserDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/auth/users/{id}/reset-password": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Generates a new temporary password and forces a change at next login",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "Reset user password",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.UserWithPasswordDTO"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/dashboard/inventory/export": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Downloads antibodies and lots of the active lab as an XLSX workbook",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "Dashboard"
                ],
                "summary": "Export inventory",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    },
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Returns badge counts and the prioritized list of lots and antibodies that need attention",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Dashboard"
                ],
                "summary": "Get dashboard summary",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.DashboardSummaryDTO"
                        }
                    },
                    "400": {
                        "description": "No lab selected",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/documents/{id}": {
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "Documents"
                ],
                "summary": "Delete document",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/documents/{id}/download": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "octet-stream"
                ],
                "tags": [
                    "Documents"
                ],
                "summary": "Download document",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Document ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/fluorochromes": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Fluorochromes"
                ],
                "summary": "List fluorochromes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.FluorochromeDTO"
                            }
                        }
                    },
                    "400": {
                        "description": "No lab selected",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Fluorochromes"
                ],
                "summary": "Create fluorochrome",
                "parameters": [
                    {
                        "description": "Fluorochrome",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateFluorochromeRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.FluorochromeDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/fluorochromes/{id}": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Fluorochromes"
                ],
                "summary": "Change fluorochrome color",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Fluorochrome ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Color",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateFluorochromeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.FluorochromeDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Fails while an active antibody still uses the fluorochrome",
                "tags": [
                    "Fluorochromes"
                ],
                "summary": "Delete fluorochrome",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Fluorochrome ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/labs": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Super admins see every lab, other users only their own",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Labs"
                ],
                "summary": "List labs",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.LabDTO"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Labs"
                ],
                "summary": "Create lab",
                "parameters": [
                    {
                        "description": "Lab",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateLabRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.LabDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/labs/{id}": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Labs"
                ],
                "summary": "Rename lab",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lab ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Lab",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateLabRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LabDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/labs/{id}/reactivate": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Labs"
                ],
                "summary": "Reactivate lab",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lab ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LabDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/labs/{id}/settings": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Changes inventory behaviour such as counting only sealed vials, the expiry warning window, QC document requirement and storage tracking",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Labs"
                ],
                "summary": "Update lab settings",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lab ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Settings",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateLabSettingsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LabDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/labs/{id}/suspend": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Blocks login for every user of the lab",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Labs"
                ],
                "summary": "Suspend lab",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lab ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LabDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/lots": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    },
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Lists lots of the active lab with vial counts",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "List lots",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by antibody",
                        "name": "antibodyId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "enum": [
                            "pending",
                            "approved",
                            "failed"
                        ],
                        "description": "Filter by QC status",
                        "name": "qcStatus",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Include archived lots",
                        "name": "includeArchived",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.LotDTO"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates the lot with its sealed vials, placing them in the given storage unit when storage is enabled",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "Receive a new lot",
                "parameters": [
                    {
                        "description": "Lot",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateLotRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.LotWithVialsDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/lots/barcode/{barcode}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Matches the vendor barcode first, then the lot number. An empty list means nothing matched.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "Look up lots by scanned code",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Scanned barcode or lot number",
                        "name": "barcode",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.LotDTO"
                            }
                        }
                    }
                }
            }
        },
        "/lots/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    },
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "Get lot",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lot ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LotDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "Update lot",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lot ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Changes",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateLotRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LotDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/lots/{id}/archive": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Archives the lot and its remaining vials, freeing their storage cells",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "Archive lot",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lot ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LotDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/lots/{id}/deplete-all": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "Deplete every vial of a lot",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lot ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LotDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/lots/{id}/documents": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Attaches a file such as a certificate of analysis to a lot",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Documents"
                ],
                "summary": "Upload lot document",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lot ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "file",
                        "description": "File",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Description",
                        "name": "description",
                        "in": "formData"
                    },
                    {
                        "type": "boolean",
                        "description": "Counts as QC documentation",
                        "name": "isQcDocument",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.DocumentDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Documents"
                ],
                "summary": "List lot documents",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lot ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.DocumentDTO"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/lots/{id}/qc": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Approving may require a QC document depending on lab settings",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "Set lot QC status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lot ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Status",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateQCStatusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LotDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/lots/{id}/vials": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Lots"
                ],
                "summary": "Receive more vials",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Lot ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Vials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.ReceiveVialsRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.LotWithVialsDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/storage/search": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Storage"
                ],
                "summary": "Locate vials of an antibody",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Antibody ID",
                        "name": "antibodyId",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.VialLocationDTO"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/storage/units": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Storage"
                ],
                "summary": "List storage units",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Include deactivated units",
                        "name": "includeInactive",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.StorageUnitDTO"
                            }
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates a unit with a rows x cols grid of cells labelled A1, A2 and so on",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Storage"
                ],
                "summary": "Create storage unit",
                "parameters": [
                    {
                        "description": "Unit",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateStorageUnitRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.StorageUnitDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/storage/units/{id}": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Renames or resizes a unit. Shrinking fails while a removed cell holds a vial.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Storage"
                ],
                "summary": "Update storage unit",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Storage unit ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Changes",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateStorageUnitRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.StorageUnitDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "Storage"
                ],
                "summary": "Delete storage unit",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Storage unit ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Unit still holds vials",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/storage/units/{id}/grid": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns the unit with every cell and the vial it holds",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Storage"
                ],
                "summary": "Get storage grid",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Storage unit ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.StorageGridDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/tickets": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tickets"
                ],
                "summary": "List support tickets",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "open",
                            "in_progress",
                            "resolved",
                            "closed"
                        ],
                        "description": "Filter by status",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.TicketDTO"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tickets"
                ],
                "summary": "Open a support ticket",
                "parameters": [
                    {
                        "description": "Ticket",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateTicketRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.TicketDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/tickets/{id}/comments": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tickets"
                ],
                "summary": "Comment on a ticket",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Ticket ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Comment",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.CreateTicketCommentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.TicketDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/tickets/{id}/status": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tickets"
                ],
                "summary": "Change ticket status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Ticket ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Status",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.UpdateTicketStatusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.TicketDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/vials": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    },
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Vials"
                ],
                "summary": "List vials",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by lot",
                        "name": "lotId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by antibody",
                        "name": "antibodyId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by storage unit",
                        "name": "storageUnitId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "enum": [
                            "sealed",
                            "opened",
                            "depleted",
                            "archived"
                        ],
                        "description": "Filter by status",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.VialDTO"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/vials/move": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Moves vials into a storage unit. Mode auto fills the first free cells, start fills from a given cell onwards and pick uses the listed cells in order.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Vials"
                ],
                "summary": "Move vials",
                "parameters": [
                    {
                        "description": "Move",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.MoveVialsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.VialDTO"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/vials/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Vials"
                ],
                "summary": "Get vial",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Vial ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.VialDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/vials/{id}/deplete": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Marks a vial used up and frees its storage cell",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Vials"
                ],
                "summary": "Deplete vial",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Vial ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.VialDTO"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/vials/{id}/open": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Opens a sealed vial and starts its open-stability clock. Vials of lots that are not QC approved need force, which requires QC approval rights.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Vials"
                ],
                "summary": "Open vial",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Vial ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Scan confirmation",
                        "name": "request",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/domain.OpenVialRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.VialDTO"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        },
        "/vials/{id}/return-to-storage": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Vials"
                ],
                "summary": "Return opened vial to storage",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Vial ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Target cell",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.ReturnToStorageRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.VialDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/domain.APIError"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.APIError": {
            "type": "object",
            "properties": {
                "detail": {
                    "type": "string"
                },
                "errors": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "status": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "domain.AntibodyDTO": {
            "type": "object",
            "properties": {
                "approvedLowThreshold": {
                    "type": "integer"
                },
                "approvedStockCount": {
                    "type": "integer"
                },
                "catalogNumber": {
                    "type": "string"
                },
                "clone": {
                    "type": "string"
                },
                "counts": {
                    "$ref": "#/definitions/domain.VialCountsDTO"
                },
                "createdAt": {
                    "type": "string"
                },
                "designation": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.AntibodyDesignation"
                        }
                    ]
                },
                "displayName": {
                    "type": "string"
                },
                "fluorochrome": {
                    "type": "string"
                },
                "fluorochromeColor": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "isApprovedLow": {
                    "type": "boolean"
                },
                "isLowStock": {
                    "type": "boolean"
                },
                "labId": {
                    "type": "string"
                },
                "lowStockThreshold": {
                    "type": "integer"
                },
                "stabilityDays": {
                    "type": "integer"
                },
                "stockCount": {
                    "type": "integer"
                },
                "target": {
                    "type": "string"
                },
                "vendor": {
                    "type": "string"
                }
            }
        },
        "domain.AntibodyDesignation": {
            "type": "string",
            "enum": [
                "ruo",
                "asr",
                "ivd"
            ],
            "x-enum-varnames": [
                "DesignationRUO",
                "DesignationASR",
                "DesignationIVD"
            ]
        },
        "domain.AuditLogDTO": {
            "type": "object",
            "properties": {
                "action": {
                    "type": "string"
                },
                "afterState": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "beforeState": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "createdAt": {
                    "type": "string"
                },
                "entityId": {
                    "type": "string"
                },
                "entityType": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "ipAddress": {
                    "type": "string"
                },
                "labId": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "requestId": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                },
                "userName": {
                    "type": "string"
                }
            }
        },
        "domain.AuditRangeDTO": {
            "type": "object",
            "properties": {
                "maxMonth": {
                    "type": "string"
                },
                "minMonth": {
                    "type": "string"
                }
            }
        },
        "domain.ChangePasswordRequest": {
            "type": "object",
            "required": [
                "currentPassword",
                "newPassword"
            ],
            "properties": {
                "currentPassword": {
                    "type": "string"
                },
                "newPassword": {
                    "type": "string",
                    "maxLength": 128
                }
            }
        },
        "domain.CreateAntibodyRequest": {
            "type": "object",
            "required": [
                "fluorochrome",
                "target"
            ],
            "properties": {
                "approvedLowThreshold": {
                    "type": "integer",
                    "minimum": 0,
                    "maximum": 10000
                },
                "catalogNumber": {
                    "type": "string",
                    "maxLength": 100
                },
                "clone": {
                    "type": "string",
                    "maxLength": 100
                },
                "designation": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.AntibodyDesignation"
                        }
                    ]
                },
                "fluorochrome": {
                    "type": "string",
                    "maxLength": 100
                },
                "lowStockThreshold": {
                    "type": "integer",
                    "minimum": 0,
                    "maximum": 10000
                },
                "stabilityDays": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 3650
                },
                "target": {
                    "type": "string",
                    "maxLength": 100
                },
                "vendor": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "domain.CreateFluorochromeRequest": {
            "type": "object",
            "required": [
                "color",
                "name"
            ],
            "properties": {
                "color": {
                    "type": "string"
                },
                "name": {
                    "type": "string",
                    "maxLength": 100
                }
            }
        },
        "domain.CreateLabRequest": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "domain.CreateLotRequest": {
            "type": "object",
            "required": [
                "antibodyId",
                "lotNumber",
                "quantity"
            ],
            "properties": {
                "antibodyId": {
                    "type": "string"
                },
                "expirationDate": {
                    "type": "string"
                },
                "lotNumber": {
                    "type": "string",
                    "maxLength": 100
                },
                "quantity": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 500
                },
                "storageUnitId": {
                    "type": "string"
                },
                "vendorBarcode": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "domain.CreateStorageUnitRequest": {
            "type": "object",
            "required": [
                "cols",
                "name",
                "rows"
            ],
            "properties": {
                "cols": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 26
                },
                "isTemporary": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string",
                    "maxLength": 200
                },
                "rows": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 26
                },
                "temperature": {
                    "type": "string",
                    "maxLength": 50
                }
            }
        },
        "domain.CreateTicketCommentRequest": {
            "type": "object",
            "required": [
                "message"
            ],
            "properties": {
                "message": {
                    "type": "string",
                    "maxLength": 5000
                }
            }
        },
        "domain.CreateTicketRequest": {
            "type": "object",
            "required": [
                "message",
                "title"
            ],
            "properties": {
                "message": {
                    "type": "string",
                    "maxLength": 5000
                },
                "title": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "domain.CreateUserRequest": {
            "type": "object",
            "required": [
                "email",
                "fullName",
                "role"
            ],
            "properties": {
                "email": {
                    "type": "string",
                    "maxLength": 255
                },
                "fullName": {
                    "type": "string",
                    "maxLength": 200
                },
                "labId": {
                    "type": "string"
                },
                "role": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.UserRole"
                        }
                    ]
                }
            }
        },
        "domain.DashboardSummaryDTO": {
            "type": "object",
            "properties": {
                "approvedLow": {
                    "type": "integer"
                },
                "expiredLots": {
                    "type": "integer"
                },
                "expiredOpenVials": {
                    "type": "integer"
                },
                "expiringLots": {
                    "type": "integer"
                },
                "expiryWarnDays": {
                    "type": "integer"
                },
                "generatedAt": {
                    "type": "string"
                },
                "labId": {
                    "type": "string"
                },
                "lowStock": {
                    "type": "integer"
                },
                "pendingQc": {
                    "type": "integer"
                },
                "priorities": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.PriorityItemDTO"
                    }
                }
            }
        },
        "domain.DocumentDTO": {
            "type": "object",
            "properties": {
                "contentType": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "fileName": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "isQcDocument": {
                    "type": "boolean"
                },
                "lotId": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "uploadedBy": {
                    "type": "string"
                }
            }
        },
        "domain.FluorochromeDTO": {
            "type": "object",
            "properties": {
                "color": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "labId": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "domain.GridVialDTO": {
            "type": "object",
            "properties": {
                "antibodyFluorochrome": {
                    "type": "string"
                },
                "antibodyId": {
                    "type": "string"
                },
                "antibodyTarget": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "expirationDate": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "lotId": {
                    "type": "string"
                },
                "lotNumber": {
                    "type": "string"
                },
                "openExpiration": {
                    "type": "string"
                },
                "qcStatus": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.QCStatus"
                        }
                    ]
                },
                "status": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.VialStatus"
                        }
                    ]
                }
            }
        },
        "domain.LabDTO": {
            "type": "object",
            "properties": {
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                },
                "settings": {
                    "$ref": "#/definitions/domain.LabSettings"
                }
            }
        },
        "domain.LabSettings": {
            "type": "object",
            "properties": {
                "expiryWarnDays": {
                    "type": "integer"
                },
                "qcDocRequired": {
                    "type": "boolean"
                },
                "sealedCountsOnly": {
                    "type": "boolean"
                },
                "storageEnabled": {
                    "type": "boolean"
                }
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string",
                    "maxLength": 255
                },
                "password": {
                    "type": "string",
                    "maxLength": 128
                }
            }
        },
        "domain.LoginResponse": {
            "type": "object",
            "properties": {
                "accessToken": {
                    "type": "string"
                },
                "expiresIn": {
                    "type": "integer",
                    "description": "seconds"
                },
                "tokenType": {
                    "type": "string"
                },
                "user": {
                    "$ref": "#/definitions/domain.UserDTO"
                }
            }
        },
        "domain.LotDTO": {
            "type": "object",
            "properties": {
                "antibodyId": {
                    "type": "string"
                },
                "antibodyName": {
                    "type": "string"
                },
                "counts": {
                    "$ref": "#/definitions/domain.VialCountsDTO"
                },
                "createdAt": {
                    "type": "string"
                },
                "documentCount": {
                    "type": "integer"
                },
                "expirationDate": {
                    "type": "string"
                },
                "hasQcDocument": {
                    "type": "boolean"
                },
                "id": {
                    "type": "string"
                },
                "isArchived": {
                    "type": "boolean"
                },
                "isExpired": {
                    "type": "boolean"
                },
                "labId": {
                    "type": "string"
                },
                "lotNumber": {
                    "type": "string"
                },
                "qcApprovedAt": {
                    "type": "string"
                },
                "qcApprovedBy": {
                    "type": "string"
                },
                "qcStatus": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.QCStatus"
                        }
                    ]
                },
                "vendorBarcode": {
                    "type": "string"
                }
            }
        },
        "domain.LotWithVialsDTO": {
            "type": "object",
            "properties": {
                "lot": {
                    "$ref": "#/definitions/domain.LotDTO"
                },
                "vials": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.VialDTO"
                    }
                }
            }
        },
        "domain.MeDTO": {
            "type": "object",
            "properties": {
                "lab": {
                    "$ref": "#/definitions/domain.LabDTO"
                },
                "user": {
                    "$ref": "#/definitions/domain.UserDTO"
                }
            }
        },
        "domain.MoveMode": {
            "type": "string",
            "enum": [
                "auto",
                "start",
                "pick"
            ],
            "x-enum-varnames": [
                "MoveModeAuto",
                "MoveModeStart",
                "MoveModePick"
            ]
        },
        "domain.MoveVialsRequest": {
            "type": "object",
            "required": [
                "mode",
                "targetUnitId",
                "vialIds"
            ],
            "properties": {
                "cellIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "mode": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.MoveMode"
                        }
                    ]
                },
                "startCellId": {
                    "type": "string"
                },
                "targetUnitId": {
                    "type": "string"
                },
                "vialIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "domain.OpenVialRequest": {
            "type": "object",
            "properties": {
                "cellId": {
                    "type": "string",
                    "description": "CellID, when given, must be the cell the vial is in (scan confirmation)"
                },
                "force": {
                    "type": "boolean",
                    "description": "Force opens a vial of a lot that is not QC approved (supervisor and above)"
                }
            }
        },
        "domain.PaginatedResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "page": {
                    "type": "integer"
                },
                "pageSize": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "totalPages": {
                    "type": "integer"
                }
            }
        },
        "domain.PriorityItemDTO": {
            "type": "object",
            "properties": {
                "detail": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "entityId": {
                    "type": "string"
                },
                "entityType": {
                    "type": "string"
                },
                "kind": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.PriorityKind"
                        }
                    ]
                },
                "severity": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "domain.PriorityKind": {
            "type": "string",
            "enum": [
                "expired_lot",
                "expired_open_vial",
                "pending_qc",
                "low_stock",
                "approved_low",
                "expiring_lot"
            ],
            "x-enum-varnames": [
                "PriorityExpiredLot",
                "PriorityExpiredOpenVial",
                "PriorityPendingQC",
                "PriorityLowStock",
                "PriorityApprovedLow",
                "PriorityExpiringLot"
            ]
        },
        "domain.QCStatus": {
            "type": "string",
            "enum": [
                "pending",
                "approved",
                "failed"
            ],
            "x-enum-varnames": [
                "QCStatusPending",
                "QCStatusApproved",
                "QCStatusFailed"
            ]
        },
        "domain.ReceiveVialsRequest": {
            "type": "object",
            "required": [
                "quantity"
            ],
            "properties": {
                "quantity": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 500
                },
                "storageUnitId": {
                    "type": "string"
                }
            }
        },
        "domain.ReturnToStorageRequest": {
            "type": "object",
            "required": [
                "cellId"
            ],
            "properties": {
                "cellId": {
                    "type": "string"
                }
            }
        },
        "domain.StorageCellDTO": {
            "type": "object",
            "properties": {
                "col": {
                    "type": "integer"
                },
                "id": {
                    "type": "string"
                },
                "label": {
                    "type": "string"
                },
                "row": {
                    "type": "integer"
                },
                "vial": {
                    "$ref": "#/definitions/domain.GridVialDTO"
                }
            }
        },
        "domain.StorageGridDTO": {
            "type": "object",
            "properties": {
                "cells": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.StorageCellDTO"
                    }
                },
                "unit": {
                    "$ref": "#/definitions/domain.StorageUnitDTO"
                }
            }
        },
        "domain.StorageUnitDTO": {
            "type": "object",
            "properties": {
                "capacity": {
                    "type": "integer"
                },
                "cols": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "isTemporary": {
                    "type": "boolean"
                },
                "labId": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "occupied": {
                    "type": "integer"
                },
                "rows": {
                    "type": "integer"
                },
                "temperature": {
                    "type": "string"
                }
            }
        },
        "domain.TicketCommentDTO": {
            "type": "object",
            "properties": {
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                },
                "userName": {
                    "type": "string"
                }
            }
        },
        "domain.TicketDTO": {
            "type": "object",
            "properties": {
                "comments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.TicketCommentDTO"
                    }
                },
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "labId": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.TicketStatus"
                        }
                    ]
                },
                "title": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                },
                "userName": {
                    "type": "string"
                }
            }
        },
        "domain.TicketStatus": {
            "type": "string",
            "enum": [
                "open",
                "in_progress",
                "resolved",
                "closed"
            ],
            "x-enum-varnames": [
                "TicketStatusOpen",
                "TicketStatusInProgress",
                "TicketStatusResolved",
                "TicketStatusClosed"
            ]
        },
        "domain.UpdateAntibodyRequest": {
            "type": "object",
            "properties": {
                "approvedLowThreshold": {
                    "type": "integer",
                    "minimum": -1,
                    "maximum": 10000
                },
                "catalogNumber": {
                    "type": "string",
                    "maxLength": 100
                },
                "clone": {
                    "type": "string",
                    "maxLength": 100
                },
                "designation": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.AntibodyDesignation"
                        }
                    ]
                },
                "fluorochrome": {
                    "type": "string",
                    "maxLength": 100
                },
                "lowStockThreshold": {
                    "type": "integer",
                    "description": "-1 clears a threshold; 0 is a real threshold",
                    "minimum": -1,
                    "maximum": 10000
                },
                "stabilityDays": {
                    "type": "integer",
                    "description": "zero or -1 clears stability",
                    "minimum": -1,
                    "maximum": 3650
                },
                "target": {
                    "type": "string",
                    "maxLength": 100
                },
                "vendor": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "domain.UpdateFluorochromeRequest": {
            "type": "object",
            "required": [
                "color"
            ],
            "properties": {
                "color": {
                    "type": "string"
                }
            }
        },
        "domain.UpdateLabRequest": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "domain.UpdateLabSettingsRequest": {
            "type": "object",
            "properties": {
                "expiryWarnDays": {
                    "type": "integer",
                    "minimum": 0,
                    "maximum": 365
                },
                "qcDocRequired": {
                    "type": "boolean"
                },
                "sealedCountsOnly": {
                    "type": "boolean"
                },
                "storageEnabled": {
                    "type": "boolean"
                }
            }
        },
        "domain.UpdateLotRequest": {
            "type": "object",
            "properties": {
                "expirationDate": {
                    "type": "string"
                },
                "lotNumber": {
                    "type": "string",
                    "maxLength": 100
                },
                "vendorBarcode": {
                    "type": "string",
                    "maxLength": 200
                }
            }
        },
        "domain.UpdateQCStatusRequest": {
            "type": "object",
            "required": [
                "status"
            ],
            "properties": {
                "status": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.QCStatus"
                        }
                    ]
                }
            }
        },
        "domain.UpdateStorageUnitRequest": {
            "type": "object",
            "properties": {
                "cols": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 26
                },
                "isActive": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string",
                    "maxLength": 200
                },
                "rows": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 26
                },
                "temperature": {
                    "type": "string",
                    "maxLength": 50
                }
            }
        },
        "domain.UpdateTicketStatusRequest": {
            "type": "object",
            "required": [
                "status"
            ],
            "properties": {
                "status": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.TicketStatus"
                        }
                    ]
                }
            }
        },
        "domain.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "fullName": {
                    "type": "string",
                    "maxLength": 200
                },
                "isActive": {
                    "type": "boolean"
                },
                "role": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.UserRole"
                        }
                    ]
                }
            }
        },
        "domain.UserDTO": {
            "type": "object",
            "properties": {
                "createdAt": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "labId": {
                    "type": "string"
                },
                "labName": {
                    "type": "string"
                },
                "lastLoginAt": {
                    "type": "string"
                },
                "mustChangePassword": {
                    "type": "boolean"
                },
                "role": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.UserRole"
                        }
                    ]
                }
            }
        },
        "domain.UserRole": {
            "type": "string",
            "enum": [
                "super_admin",
                "lab_admin",
                "supervisor",
                "tech",
                "read_only"
            ],
            "x-enum-varnames": [
                "RoleSuperAdmin",
                "RoleLabAdmin",
                "RoleSupervisor",
                "RoleTech",
                "RoleReadOnly"
            ]
        },
        "domain.UserWithPasswordDTO": {
            "type": "object",
            "properties": {
                "temporaryPassword": {
                    "type": "string"
                },
                "user": {
                    "$ref": "#/definitions/domain.UserDTO"
                }
            }
        },
        "domain.VialCountsDTO": {
            "type": "object",
            "properties": {
                "depleted": {
                    "type": "integer"
                },
                "opened": {
                    "type": "integer"
                },
                "sealed": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "domain.VialDTO": {
            "type": "object",
            "properties": {
                "antibodyId": {
                    "type": "string"
                },
                "depletedAt": {
                    "type": "string"
                },
                "depletedBy": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "isOpenExpired": {
                    "type": "boolean"
                },
                "labId": {
                    "type": "string"
                },
                "locationCellId": {
                    "type": "string"
                },
                "locationLabel": {
                    "type": "string"
                },
                "lotId": {
                    "type": "string"
                },
                "lotNumber": {
                    "type": "string"
                },
                "openExpiration": {
                    "type": "string"
                },
                "openedAt": {
                    "type": "string"
                },
                "openedBy": {
                    "type": "string"
                },
                "receivedAt": {
                    "type": "string"
                },
                "status": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.VialStatus"
                        }
                    ]
                },
                "storageUnitId": {
                    "type": "string"
                }
            }
        },
        "domain.VialLocationDTO": {
            "type": "object",
            "properties": {
                "cellId": {
                    "type": "string"
                },
                "cellLabel": {
                    "type": "string"
                },
                "lotId": {
                    "type": "string"
                },
                "lotNumber": {
                    "type": "string"
                },
                "status": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/domain.VialStatus"
                        }
                    ]
                },
                "storageUnitId": {
                    "type": "string"
                },
                "storageUnitName": {
                    "type": "string"
                },
                "vialId": {
                    "type": "string"
                }
            }
        },
        "domain.VialStatus": {
            "type": "string",
            "enum": [
                "sealed",
                "opened",
                "depleted",
                "archived"
            ],
            "x-enum-varnames": [
                "VialStatusSealed",
                "VialStatusOpened",
                "VialStatusDepleted",
                "VialStatusArchived"
            ]
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "x-api-key",
            "in": "header"
        },
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "LabAid API",
	Description:      "Antibody lot, vial and storage inventory for flow cytometry labs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
