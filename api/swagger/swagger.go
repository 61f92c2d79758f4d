package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Orbit API",
        "description": "Saves events detected in web pages, extracts event details from text and exports calendars",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Meta", "description": "Service index and probes"},
        {"name": "Events", "description": "Saved events"},
        {"name": "Extraction", "description": "Event detection in free text"},
        {"name": "Export", "description": "Calendar and agenda downloads"},
        {"name": "Auth", "description": "Google calendar consent"}
    ],
    "paths": {
        "/": {
            "get": {
                "tags": ["Meta"],
                "summary": "API index",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["Meta"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List saved events",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Event"}}}
                }
            }
        },
        "/api/saveEvent": {
            "post": {
                "tags": ["Events"],
                "summary": "Save an event",
                "description": "Any id in the payload is ignored; the server assigns one.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/Event"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/events/{id}": {
            "delete": {
                "tags": ["Events"],
                "summary": "Delete an event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/events/clear": {
            "post": {
                "tags": ["Events"],
                "summary": "Delete every saved event",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClearEventsResponse"}}
                }
            }
        },
        "/api/extract": {
            "post": {
                "tags": ["Extraction"],
                "summary": "Detect an event in free text",
                "description": "Returns zero or one detected events. Upstream model failures fall back to pattern matching.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExtractRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ExtractResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/export/ics": {
            "get": {
                "tags": ["Export"],
                "summary": "Download events as iCalendar",
                "produces": ["text/calendar"],
                "responses": {"200": {"description": "orbit-events.ics", "schema": {"type": "file"}}}
            }
        },
        "/api/export/csv": {
            "get": {
                "tags": ["Export"],
                "summary": "Download events as CSV",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "orbit-events.csv", "schema": {"type": "file"}}}
            }
        },
        "/api/export/pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Download events as a PDF agenda",
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "orbit-events.pdf", "schema": {"type": "file"}}}
            }
        },
        "/api/auth/google": {
            "get": {
                "tags": ["Auth"],
                "summary": "Start Google calendar consent",
                "responses": {"302": {"description": "Redirect to Google"}}
            }
        },
        "/api/auth/google/callback": {
            "get": {
                "tags": ["Auth"],
                "summary": "Finish Google calendar consent",
                "parameters": [
                    {"name": "code", "in": "query", "required": true, "type": "string"},
                    {"name": "state", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "302": {"description": "Redirect to the success page"},
                    "400": {"description": "Missing code or invalid state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "State already used", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "date": {"type": "string", "x-nullable": true},
                "time": {"type": "string", "x-nullable": true},
                "tag": {"type": "string", "x-nullable": true},
                "confidence": {"type": "number", "x-nullable": true},
                "sourceSnippet": {"type": "string", "x-nullable": true},
                "url": {"type": "string", "x-nullable": true},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "SaveEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 255},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "tag": {"type": "string", "maxLength": 255},
                "confidence": {"type": "number", "minimum": 0, "maximum": 1},
                "sourceSnippet": {"type": "string"},
                "url": {"type": "string", "maxLength": 2048}
            }
        },
        "ClearEventsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "ExtractRequest": {
            "type": "object",
            "properties": {
                "snippet": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "ExtractionResult": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "date": {"type": "string", "x-nullable": true},
                "time": {"type": "string", "x-nullable": true},
                "tag": {"type": "string"},
                "description": {"type": "string"},
                "confidence": {"type": "number"},
                "sourceSnippet": {"type": "string", "maxLength": 240},
                "url": {"type": "string", "x-nullable": true},
                "source": {"type": "string", "enum": ["llm", "fallback"]}
            }
        },
        "ExtractResponse": {
            "type": "object",
            "properties": {
                "detected": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ExtractionResult"}
                }
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
