// Package docs holds the OpenAPI description served under /swagger.
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
            "url": "https://github.com/guttosm/salespulse",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/summary/sales": {
            "post": {
                "description": "Orders in the date range rolled up per customer",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["summary"],
                "summary": "Per-customer sales summary",
                "parameters": [
                    {
                        "description": "Inclusive date range",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.UserSalesSummaryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Success", "schema": {"$ref": "#/definitions/dto.UserSalesSummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/summary/sales/products": {
            "post": {
                "description": "Orders in the date range containing any of the products, broken down per product",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["summary"],
                "summary": "Multi-product sales summary",
                "parameters": [
                    {
                        "description": "Products and inclusive date range",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.SalesSummaryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Success", "schema": {"$ref": "#/definitions/dto.SalesSummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/summary/sales/products/{id}": {
            "get": {
                "description": "Remaining stock and every order containing the product",
                "produces": ["application/json"],
                "tags": ["summary"],
                "summary": "Single-product sales summary",
                "parameters": [
                    {"type": "integer", "example": 1, "description": "Product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Success", "schema": {"$ref": "#/definitions/dto.ProductSalesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Returns ready if the data store is reachable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error_details": {"type": "string", "example": "sql: connection refused"},
                "message": {"type": "string", "example": "product 42 not found"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.ProductOrderEntry": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 3},
                "orderDate": {"type": "string"},
                "orderId": {"type": "integer", "example": 7},
                "totalPrice": {"type": "number", "example": 30},
                "userName": {"type": "string", "example": "User1"}
            }
        },
        "dto.ProductSalesResponse": {
            "type": "object",
            "properties": {
                "leftCount": {"type": "integer", "example": 45},
                "orders": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductOrderEntry"}}
            }
        },
        "dto.SalesOrderEntry": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 5},
                "orderDate": {"type": "string"},
                "orderId": {"type": "integer", "example": 7},
                "products": {"type": "array", "items": {"$ref": "#/definitions/dto.SalesProductLine"}},
                "totalPrice": {"type": "number", "example": 50},
                "userName": {"type": "string", "example": "User1"}
            }
        },
        "dto.SalesProductLine": {
            "type": "object",
            "properties": {
                "price": {"type": "number", "example": 10},
                "productId": {"type": "integer", "example": 1},
                "quantity": {"type": "integer", "example": 3}
            }
        },
        "dto.SalesSummaryRequest": {
            "type": "object",
            "properties": {
                "dateEnd": {"type": "string", "example": "2025-01-31T23:59:59Z"},
                "dateStart": {"type": "string", "example": "2025-01-01T00:00:00Z"},
                "productIds": {"type": "array", "items": {"type": "integer"}, "example": [1, 2, 3]}
            }
        },
        "dto.SalesSummaryResponse": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/dto.SalesOrderEntry"}}
            }
        },
        "dto.UserOrderEntry": {
            "type": "object",
            "properties": {
                "orderDate": {"type": "string"},
                "orderId": {"type": "integer", "example": 7},
                "products": {"type": "array", "items": {"$ref": "#/definitions/dto.UserProductLine"}},
                "summ": {"type": "number", "example": 50}
            }
        },
        "dto.UserProductLine": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 3},
                "price": {"type": "number", "example": 10},
                "productId": {"type": "integer", "example": 1}
            }
        },
        "dto.UserSalesEntry": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 12},
                "name": {"type": "string", "example": "User1"},
                "orders": {"type": "array", "items": {"$ref": "#/definitions/dto.UserOrderEntry"}},
                "summ": {"type": "number", "example": 120}
            }
        },
        "dto.UserSalesSummaryRequest": {
            "type": "object",
            "properties": {
                "dateEnd": {"type": "string", "example": "2025-01-31T23:59:59Z"},
                "dateStart": {"type": "string", "example": "2025-01-01T00:00:00Z"}
            }
        },
        "dto.UserSalesSummaryResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/dto.UserSalesEntry"}}
            }
        }
    },
    "tags": [
        {"description": "Sales summaries by product and by customer", "name": "summary"},
        {"description": "Liveness and readiness probes", "name": "health"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "salespulse API",
	Description:      "Read-only sales summaries over customers, products, orders and order items.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
