// Package docs holds the OpenAPI description served on /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/v1/client/search/vehicles": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Basic vehicle search",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/vehicle.SearchCriteria"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vehicle.BasicResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/client/search/advanced/vehicles": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Advanced vehicle search",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/vehicle.AdvancedSearchCriteria"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vehicle.PagedResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/client/search/advanced/vehicles/live": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Advanced vehicle search from live services",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/vehicle.AdvancedSearchCriteria"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vehicle.PagedResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/admin/search/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Recent searches",
                "parameters": [
                    {"type": "string", "in": "query", "name": "subject"},
                    {"type": "string", "in": "query", "name": "path"},
                    {"type": "integer", "in": "query", "name": "limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/ready": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }}
        }
    },
    "definitions": {
        "vehicle.SearchCriteria": {
            "type": "object",
            "properties": {
                "pickupLocation": {"type": "string", "example": "Colombo"},
                "pickupDate": {"type": "string", "example": "2025-03-01"},
                "pickupTime": {"type": "string", "example": "10:00"},
                "dropOffDate": {"type": "string", "example": "2025-03-05"},
                "dropOffTime": {"type": "string", "example": "10:00"}
            }
        },
        "vehicle.AdvancedSearchCriteria": {
            "type": "object",
            "properties": {
                "pickupLocation": {"type": "string"},
                "pickupDate": {"type": "string"},
                "pickupTime": {"type": "string"},
                "dropOffDate": {"type": "string"},
                "dropOffTime": {"type": "string"},
                "pageNumber": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "sortBy": {"type": "string", "enum": ["price", "location", "bodyType"]},
                "sortDirection": {"type": "string", "enum": ["ASC", "DESC"]},
                "bodyTypeFilter": {"type": "string"},
                "minPrice": {"type": "number"},
                "maxPrice": {"type": "number"},
                "userLocation": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "radiusKm": {"type": "number"}
            }
        },
        "vehicle.Offer": {
            "type": "object",
            "properties": {
                "ownerHasVehicleId": {"type": "string"},
                "vehicleId": {"type": "string"},
                "ownerId": {"type": "string"},
                "bodyType": {"type": "string"},
                "make": {"type": "string"},
                "model": {"type": "string"},
                "year": {"type": "string"},
                "imageUrl": {"type": "string"},
                "location": {"type": "string"},
                "availableFrom": {"type": "string"},
                "availableUntil": {"type": "string"},
                "pricePerDay": {"type": "number"},
                "pricePerWeek": {"type": "number"},
                "pricePerMonth": {"type": "number"},
                "currencyCode": {"type": "string"},
                "totalCost": {"type": "number"},
                "rentalDays": {"type": "integer"}
            }
        },
        "vehicle.BasicResult": {
            "type": "object",
            "properties": {
                "vehicles": {"type": "array", "items": {"$ref": "#/definitions/vehicle.Offer"}},
                "totalVehicles": {"type": "integer"},
                "success": {"type": "boolean"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "vehicle.PagedResult": {
            "type": "object",
            "properties": {
                "vehicles": {"type": "array", "items": {"$ref": "#/definitions/vehicle.Offer"}},
                "pageNumber": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalElements": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "first": {"type": "boolean"},
                "last": {"type": "boolean"},
                "success": {"type": "boolean"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "code": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
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
	Title:            "Client BFF API",
	Description:      "Vehicle rental search for client applications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
