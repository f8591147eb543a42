// Package docs holds the swagger document of the job API.
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
        "/jobs": {
            "get": {
                "description": "Get a list of all fetch jobs with their current status",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List all jobs",
                "responses": {
                    "200": {
                        "description": "List of jobs",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/store.Job"}}
                    },
                    "500": {"description": "Internal server error", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "post": {
                "description": "Validate a fetch request, store it and run it in the background",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Create a new job",
                "parameters": [
                    {
                        "description": "Fetch request",
                        "name": "job",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.JobSpec"}
                    }
                ],
                "responses": {
                    "200": {"description": "Job created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid request payload", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal server error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "description": "Retrieve the request and status of a job",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job",
                "parameters": [{"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Job details", "schema": {"$ref": "#/definitions/store.Job"}},
                    "404": {"description": "Job not found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/jobs/{id}/errors": {
            "get": {
                "description": "Retrieve all errors recorded while the job ran",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job errors",
                "parameters": [{"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Job errors", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Job not found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/jobs/{id}/files": {
            "get": {
                "description": "Retrieve the product review files a job wrote",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job files",
                "parameters": [{"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Job files", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Job not found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/jobs/{id}/metrics": {
            "get": {
                "description": "Retrieve per-stage counts and durations of a finished job",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job metrics",
                "parameters": [{"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Job metrics", "schema": {"$ref": "#/definitions/model.RunMetrics"}},
                    "404": {"description": "Metrics not found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "model.JobSpec": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "enum": ["products", "all"]},
                "skus": {"type": "array", "items": {"type": "string"}},
                "approved": {"type": "boolean"},
                "page": {"type": "integer"},
                "length": {"type": "integer"}
            }
        },
        "model.RunMetrics": {
            "type": "object",
            "properties": {
                "mode": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "duration": {"type": "integer"},
                "rows_read": {"type": "integer"},
                "bundles": {"type": "integer"},
                "files_written": {"type": "integer"},
                "error_count": {"type": "integer"}
            }
        },
        "store.Job": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "spec": {"$ref": "#/definitions/model.JobSpec"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Review Pipeline API",
	Description:      "Runs product review fetch jobs and reports their results.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
