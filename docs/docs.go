// Package docs contains the generated swagger artifacts served at
// /swagger. Regenerate with `swag init -g cmd/server/main.go`.
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
    "paths": {
        "/api/ai/generate-article": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Generate an article",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ai/generate-blog-title": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Generate a blog title",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ai/generate-image": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Generate an image (premium)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ai/remove-image-background": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Remove image background (premium)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ai/remove-image-object": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Remove an object from an image (premium)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ai/resume-review": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Review a resume (premium, max 5 MB)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/user/get-user-creations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List own creations",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/user/get-published-creations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List published creations",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/user/toggle-like-creations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Toggle like on a creation",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "QuickAI API",
	Description:      "Generative AI creation service with free/premium usage tiering.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
