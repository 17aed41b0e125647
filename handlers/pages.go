package handlers

import (
	"net/http"

	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterPages wires the home page and the generic 404 view.
func RegisterPages(r *gin.Engine, sessionsSvc *sessions.Service) {
	home := func(c *gin.Context) {
		view := gin.H{"page": "index", "flashes": popFlashes(c, sessionsSvc)}
		if id, ok := middleware.CurrentIdentity(c); ok {
			view["user"] = id.Username
		}
		c.JSON(http.StatusOK, view)
	}
	r.GET("/", home)
	r.GET("/index", home)
	r.POST("/index", home)

	// unmatched routes render the generic error view with a 404
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	})
}
