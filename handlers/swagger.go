package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the bookmark service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>linkmark — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the bookmark endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "linkmark", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearerAuth": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Bookmark": { "type": "object", "properties": { "id": {"type":"string"}, "url": {"type":"string"}, "title": {"type":"string"}, "userId": {"type":"string"}, "createdAt": {"type":"string","format":"date-time"} } }
    }
  },
  "security": [ { "bearerAuth": [] } ],
  "paths": {
    "/bookmarks/add": {
      "post": {
        "summary": "Create a bookmark",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["url","title"],"properties":{"url":{"type":"string"},"title":{"type":"string"}}}}}},
        "responses": { "200": { "description": "created bookmark" }, "400": { "description": "validation failure" }, "401": { "description": "unauthorized" } }
      }
    },
    "/bookmarks": {
      "get": { "summary": "List the caller's bookmarks, newest first", "responses": { "200": { "description": "array of bookmarks" }, "401": { "description": "unauthorized" } } }
    },
    "/bookmarks/{id}/delete": {
      "post": { "summary": "Delete an owned bookmark", "parameters": [ { "name": "id", "in": "path", "required": true, "schema": {"type":"string"} } ], "responses": { "200": { "description": "deleted" }, "401": { "description": "unauthorized" }, "404": { "description": "not found or not owned" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "security": [], "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "security": [], "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
