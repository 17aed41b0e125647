package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
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
    <title>crossingbook — Swagger</title>
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

// Minimal OpenAPI document describing the main routes.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "crossingbook", "version": "v0.1.0" },
  "paths": {
    "/register": {
      "post": { "summary": "Create an account and start a session", "requestBody": { "content": { "application/x-www-form-urlencoded": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "302": { "description": "redirect to profile" }, "409": { "description": "username taken" } } }
    },
    "/login": {
      "post": { "summary": "Authenticate and start a session", "requestBody": { "content": { "application/x-www-form-urlencoded": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "302": { "description": "redirect to profile" }, "401": { "description": "invalid credentials" } } }
    },
    "/api/token": {
      "post": { "summary": "Exchange credentials for a JWT access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "access token returned" }, "401": { "description": "invalid credentials" } } }
    },
    "/get_recipes": {
      "get": { "summary": "List all recipes", "responses": { "200": { "description": "recipe listing" } } }
    },
    "/search": {
      "post": { "summary": "Full-text recipe search", "requestBody": { "content": { "application/x-www-form-urlencoded": { "schema": {"type":"object","properties":{"query":{"type":"string"}}}}}}, "responses": { "200": { "description": "matching recipes (empty query returns all)" } } }
    },
    "/add_recipe": {
      "post": { "summary": "Create a recipe (session required)", "responses": { "302": { "description": "redirect to listing" }, "409": { "description": "duplicate recipe name" } } }
    },
    "/edit_recipe/{recipe_id}": {
      "post": { "summary": "Replace a recipe in full (session required)", "responses": { "302": { "description": "redirect to listing" }, "404": { "description": "unknown or malformed id" } } }
    },
    "/delete_recipe/{recipe_id}": {
      "get": { "summary": "Delete a recipe (session required)", "responses": { "302": { "description": "redirect to listing" } } }
    },
    "/get_types": {
      "get": { "summary": "List recipe types (admin only)", "responses": { "200": { "description": "sorted taxonomy" }, "403": { "description": "admin access required" } } }
    },
    "/upload_image": {
      "post": { "summary": "Upload a recipe image (session required)", "responses": { "201": { "description": "stored, url returned" } } }
    }
  }
}`
