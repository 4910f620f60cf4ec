// Package docs registers the generated OpenAPI document with swag so the
// /swagger/* routes can serve it. Regenerate with `swag init -g cmd/api/main.go`.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new voter",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/v1/credentials": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["credentials"],
                "summary": "Issue (or return the live) voting credential",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Already voted"}}
            }
        },
        "/v1/credentials/active": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["credentials"],
                "summary": "Get the voter's live credential",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/credentials/active/qr": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["credentials"],
                "summary": "Render the live credential's QR code as PNG",
                "produces": ["image/png"],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/credentials/status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["credentials"],
                "summary": "Poll validation status of the live credential",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/validations/resolve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["validations"],
                "summary": "Resolve a scanned payload to a credential",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unrecognized format"}}
            }
        },
        "/v1/validations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["validations"],
                "summary": "Validate a voter's credential",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Already validated or used"}, "410": {"description": "Expired"}}
            }
        },
        "/v1/votes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["votes"],
                "summary": "Cast a vote",
                "responses": {"201": {"description": "Created"}, "403": {"description": "No validated credential"}, "409": {"description": "Already voted"}}
            }
        },
        "/v1/candidates": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["candidates"],
                "summary": "List candidates",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["candidates"],
                "summary": "Create a candidate",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/candidates/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["candidates"],
                "summary": "Update or deactivate a candidate",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["audit"],
                "summary": "List audit log entries",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Campus Election Voting Portal API",
	Description:      "Voting credential issuance, staff validation, and ballot casting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
