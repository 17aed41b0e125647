package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/internal/taxonomy"
	"github.com/crossingbook/crossingbook/pkg/logger"
	"github.com/crossingbook/crossingbook/pkg/metrics"
	"github.com/crossingbook/crossingbook/pkg/middleware"
)

// TypeHandler holds dependencies for the taxonomy management routes.
type TypeHandler struct {
	taxonomySvc *taxonomy.Service
	sessionsSvc *sessions.Service
}

func NewTypeHandler(t *taxonomy.Service, s *sessions.Service) *TypeHandler {
	return &TypeHandler{taxonomySvc: t, sessionsSvc: s}
}

// Register wires the taxonomy routes. Every one of them is admin-gated,
// including edit and delete.
func (h *TypeHandler) Register(r *gin.Engine) {
	admin := middleware.RequireAdmin()
	r.GET("/get_types", admin, h.ListTypes)
	r.GET("/add_types", admin, h.AddTypePage)
	r.POST("/add_types", admin, h.AddType)
	r.GET("/edit_types/:group_id", admin, h.EditTypePage)
	r.POST("/edit_types/:group_id", admin, h.EditType)
	r.GET("/delete_types/:group_id", admin, h.DeleteType)
}

func (h *TypeHandler) ListTypes(c *gin.Context) {
	types, err := h.taxonomySvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("type listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "types", "types": types, "flashes": popFlashes(c, h.sessionsSvc)})
}

func (h *TypeHandler) AddTypePage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "add_types", "flashes": popFlashes(c, h.sessionsSvc)})
}

func (h *TypeHandler) AddType(c *gin.Context) {
	name := c.PostForm("recipe_type")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_type is required"})
		return
	}
	if _, err := h.taxonomySvc.Add(c.Request.Context(), name); err != nil {
		logger.Errorf("type insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add type"})
		return
	}
	metrics.TypeMutations.WithLabelValues("create").Inc()
	pushFlash(c, h.sessionsSvc, "New Type Added")
	c.Redirect(http.StatusFound, "/get_types")
}

func (h *TypeHandler) EditTypePage(c *gin.Context) {
	tp, err := h.taxonomySvc.Get(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe type not found"})
			return
		}
		logger.Errorf("type lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "edit_types", "type": tp, "flashes": popFlashes(c, h.sessionsSvc)})
}

func (h *TypeHandler) EditType(c *gin.Context) {
	name := c.PostForm("recipe_type")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_type is required"})
		return
	}
	if err := h.taxonomySvc.Replace(c.Request.Context(), c.Param("group_id"), name); err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe type not found"})
			return
		}
		logger.Errorf("type replace failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update type"})
		return
	}
	metrics.TypeMutations.WithLabelValues("replace").Inc()
	pushFlash(c, h.sessionsSvc, "Type Successfully Updated")
	c.Redirect(http.StatusFound, "/get_types")
}

func (h *TypeHandler) DeleteType(c *gin.Context) {
	if err := h.taxonomySvc.Delete(c.Request.Context(), c.Param("group_id")); err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe type not found"})
			return
		}
		logger.Errorf("type delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete type"})
		return
	}
	metrics.TypeMutations.WithLabelValues("delete").Inc()
	pushFlash(c, h.sessionsSvc, "Type Successfully Deleted")
	c.Redirect(http.StatusFound, "/get_types")
}
