package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Booking API",
        "description": "Scheduling rules, slot aggregation and appointment submission for the booking pages",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Booking", "description": "Public booking flow"},
        {"name": "Calendar", "description": "Provider calendar administration"},
        {"name": "Subscriptions", "description": "Payment gateway return relay"}
    ],
    "paths": {
        "/availability/check": {
            "get": {
                "tags": ["Booking"],
                "summary": "Check a date and time against a provider calendar",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "time", "in": "query", "type": "string"},
                    {"name": "user_id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Calendar not configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slots/{date}": {
            "get": {
                "tags": ["Booking"],
                "summary": "Load the available slots of a date",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string", "format": "date"},
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "X-Booking-Session", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SlotsResponse"}}
                }
            }
        },
        "/appointments": {
            "post": {
                "tags": ["Booking"],
                "summary": "Submit an appointment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentRequest"}},
                    {"name": "X-Booking-Session", "in": "header", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Submitted", "schema": {"$ref": "#/definitions/AppointmentResponse"}},
                    "409": {"description": "A submission is already in flight", "schema": {"$ref": "#/definitions/AppointmentResponse"}},
                    "422": {"description": "Rejected or invalid", "schema": {"$ref": "#/definitions/AppointmentResponse"}},
                    "502": {"description": "Backend failure", "schema": {"$ref": "#/definitions/AppointmentResponse"}}
                }
            }
        },
        "/appointments/cancel": {
            "get": {
                "tags": ["Booking"],
                "summary": "Abandon the booking form",
                "parameters": [
                    {"name": "redirect", "in": "query", "type": "string"}
                ],
                "responses": {
                    "303": {"description": "Redirect"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Booking"],
                "summary": "Collect pending notifications of the booking session",
                "parameters": [
                    {"name": "X-Booking-Session", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subscriptions/payment-return": {
            "get": {
                "tags": ["Subscriptions"],
                "summary": "Relay a payment gateway return to the booking backend",
                "parameters": [
                    {"name": "identificadorEnlaceComercio", "in": "query", "required": true, "type": "string"},
                    {"name": "idTransaccion", "in": "query", "required": true, "type": "string"},
                    {"name": "idEnlace", "in": "query", "required": true, "type": "string"},
                    {"name": "monto", "in": "query", "required": true, "type": "string"},
                    {"name": "hash", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Subscription active", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "402": {"description": "Payment rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Backend unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/config/{userId}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get a provider calendar configuration",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Calendar"],
                "summary": "Save a provider calendar configuration",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalendarConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/special-dates": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List special dates",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Calendar"],
                "summary": "Register a special date",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SpecialDateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/special-dates/{id}": {
            "delete": {
                "tags": ["Calendar"],
                "summary": "Remove a special date",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "user_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/calendar/agenda/{date}/export": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Download the agenda of a day",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string", "format": "date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "user_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        }
    },
    "definitions": {
        "TimeSlot": {
            "type": "object",
            "properties": {
                "start": {"type": "string"},
                "end": {"type": "string"},
                "available": {"type": "boolean"}
            }
        },
        "Notification": {
            "type": "object",
            "properties": {
                "level": {"type": "string", "enum": ["success", "error"]},
                "message": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "SlotsResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "user_id": {"type": "string"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}},
                "loading": {"type": "boolean"},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/Notification"}}
            }
        },
        "AppointmentRequest": {
            "type": "object",
            "required": ["title", "start", "end"],
            "properties": {
                "user_id": {"type": "string"},
                "title": {"type": "string"},
                "start": {"type": "string", "example": "2024-06-11T10:00:00"},
                "end": {"type": "string", "example": "2024-06-11T10:30:00"},
                "client_id": {"type": "string"},
                "client_name": {"type": "string"},
                "client_phone": {"type": "string"},
                "client_email": {"type": "string"},
                "service_id": {"type": "string"},
                "status": {"type": "string"},
                "payment_type": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "AppointmentResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["submitted", "rejected", "invalid", "failed", "skipped"]},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/Notification"}}
            }
        },
        "CalendarConfigRequest": {
            "type": "object",
            "properties": {
                "show_weekend": {"type": "boolean"},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "18:00"},
                "max_appointments": {"type": "integer"},
                "business_days": {"type": "array", "items": {"type": "integer"}},
                "slot_min_time": {"type": "string"},
                "slot_max_time": {"type": "string"},
                "slot_duration": {"type": "integer"}
            }
        },
        "SpecialDateRequest": {
            "type": "object",
            "required": ["date", "title"],
            "properties": {
                "user_id": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "color": {"type": "string", "example": "#ff0000"},
                "is_available": {"type": "boolean"}
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
