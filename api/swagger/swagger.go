package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Unimate API",
        "description": "Campus social backend: accounts, announcements, chat access and payments",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "User signup and login"},
        {"name": "Users", "description": "Peer roster and presence"},
        {"name": "Chat", "description": "Chat roster and token"},
        {"name": "Posts", "description": "Announcement feed"},
        {"name": "Payments", "description": "Payment recording and paid access"},
        {"name": "Admin", "description": "Admin panel"},
        {"name": "Contact", "description": "Contact and newsletter mail"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Sign up or log in",
                "parameters": [
                    {"name": "action", "in": "query", "required": true, "type": "string", "enum": ["signup", "login"]}
                ],
                "responses": {
                    "200": {"description": "Logged in", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Signed up", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid action or missing fields"},
                    "401": {"description": "Invalid credentials"},
                    "409": {"description": "Username already taken"}
                }
            }
        },
        "/user": {
            "get": {
                "tags": ["Users"],
                "summary": "List peers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/user/heartbeat": {
            "post": {
                "tags": ["Users"],
                "summary": "Refresh presence",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/token": {
            "get": {
                "tags": ["Chat"],
                "summary": "Chat roster and token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ChatRoster"}},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Payment required"}
                }
            }
        },
        "/post": {
            "get": {
                "tags": ["Posts"],
                "summary": "Public feed",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payment": {
            "post": {
                "tags": ["Payments"],
                "summary": "Record payment callback",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordPaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Recorded"},
                    "400": {"description": "Missing required fields"},
                    "409": {"description": "Verification already in progress"}
                }
            }
        },
        "/paid": {
            "post": {
                "tags": ["Payments"],
                "summary": "Check paid access",
                "parameters": [
                    {"name": "action", "in": "query", "required": true, "type": "string", "enum": ["check-payment-status"]},
                    {"name": "userId", "in": "formData", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PaidStatus"}},
                    "404": {"description": "User not found"}
                }
            }
        },
        "/contact": {
            "post": {
                "tags": ["Contact"],
                "summary": "Submit contact form",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContactRequest"}}
                ],
                "responses": {
                    "200": {"description": "Sent"},
                    "400": {"description": "Missing required fields"}
                }
            }
        },
        "/subscribe": {
            "post": {
                "tags": ["Contact"],
                "summary": "Subscribe to newsletter",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubscribeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Subscribed"},
                    "400": {"description": "Invalid email"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Admin"],
                "summary": "Authenticate admin",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Admin not found / Invalid password"}
                }
            }
        },
        "/admin/register": {
            "post": {
                "tags": ["Admin"],
                "summary": "Register admin",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Username already taken"}
                }
            }
        },
        "/admin/post": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create post",
                "responses": {
                    "201": {"description": "Created"}
                }
            },
            "get": {
                "tags": ["Admin"],
                "summary": "List posts",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/post/{id}": {
            "put": {
                "tags": ["Admin"],
                "summary": "Update post",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Post not found"}
                }
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete post",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Post not found"}
                }
            }
        },
        "/admin/payment": {
            "get": {
                "tags": ["Admin"],
                "summary": "Payment overview",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "RecordPaymentRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "integer"},
                "paymentStatus": {"type": "string"},
                "transactionId": {"type": "string"}
            },
            "required": ["userId", "paymentStatus", "transactionId"]
        },
        "ContactRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            },
            "required": ["name", "email", "subject", "message"]
        },
        "SubscribeRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            },
            "required": ["email"]
        },
        "PaidStatus": {
            "type": "object",
            "properties": {
                "hasPaid": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "ChatRoster": {
            "type": "object",
            "properties": {
                "users": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ChatUser"}
                },
                "chatToken": {"type": "string"}
            }
        },
        "ChatUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "isOnline": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
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
