package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/crossingbook/crossingbook/internal/models"
	"github.com/crossingbook/crossingbook/internal/recipes"
	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/internal/taxonomy"
	"github.com/crossingbook/crossingbook/pkg/logger"
	"github.com/crossingbook/crossingbook/pkg/metrics"
	"github.com/crossingbook/crossingbook/pkg/middleware"
)

// recipeForm carries the submitted recipe fields. LimitedTime is a checkbox:
// any submitted value means "on", absence means "off".
type recipeForm struct {
	RecipeName      string `form:"recipe_name" validate:"required"`
	RecipeType      string `form:"recipe_type" validate:"required"`
	Usage           string `form:"usage"`
	MaterialsNeeded string `form:"materials_needed"`
	ImageURL        string `form:"image_url" validate:"omitempty,url"`
	LimitedTime     string `form:"limited_time"`
	CreatedBy       string `form:"created_by"`
}

func (f *recipeForm) toModel() *models.Recipe {
	limited := models.LimitedTimeOff
	if f.LimitedTime != "" {
		limited = models.LimitedTimeOn
	}
	return &models.Recipe{
		RecipeName:      f.RecipeName,
		RecipeType:      f.RecipeType,
		Usage:           f.Usage,
		MaterialsNeeded: f.MaterialsNeeded,
		ImageURL:        f.ImageURL,
		LimitedTime:     limited,
		CreatedBy:       f.CreatedBy,
	}
}

// RecipeHandler holds dependencies for the recipe routes.
type RecipeHandler struct {
	recipesSvc  *recipes.Service
	taxonomySvc *taxonomy.Service
	sessionsSvc *sessions.Service
	validate    *validator.Validate
}

func NewRecipeHandler(r *recipes.Service, t *taxonomy.Service, s *sessions.Service) *RecipeHandler {
	return &RecipeHandler{recipesSvc: r, taxonomySvc: t, sessionsSvc: s, validate: validator.New()}
}

// Register wires the recipe routes. Listing and search are public; every
// mutation requires a logged-in user.
func (h *RecipeHandler) Register(r *gin.Engine) {
	r.GET("/get_recipes", h.ListRecipes)
	r.POST("/search", h.SearchRecipes)

	r.GET("/add_recipe", middleware.RequireUser(), h.AddRecipePage)
	r.POST("/add_recipe", middleware.RequireUser(), h.AddRecipe)
	r.GET("/edit_recipe/:recipe_id", middleware.RequireUser(), h.EditRecipePage)
	r.POST("/edit_recipe/:recipe_id", middleware.RequireUser(), h.EditRecipe)
	r.GET("/delete_recipe/:recipe_id", middleware.RequireUser(), h.DeleteRecipe)
}

// ListRecipes returns every recipe, unfiltered and unpaginated.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	list, err := h.recipesSvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("recipe listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "recipes", "recipes": list, "flashes": popFlashes(c, h.sessionsSvc)})
}

// SearchRecipes runs the full-text search from the search form. An empty
// query returns everything; a query matching nothing returns an empty list.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	query := c.PostForm("query")
	metrics.Searches.Inc()
	list, err := h.recipesSvc.Search(c.Request.Context(), query)
	if err != nil {
		logger.Errorf("recipe search failed (query=%q): %v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "recipes", "recipes": list, "query": query, "flashes": popFlashes(c, h.sessionsSvc)})
}

// AddRecipePage returns the form-backing data: the taxonomy sorted by name.
func (h *RecipeHandler) AddRecipePage(c *gin.Context) {
	types, err := h.taxonomySvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("type listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "add_recipe", "types": types, "flashes": popFlashes(c, h.sessionsSvc)})
}

// AddRecipe inserts a recipe stamped with the session user.
func (h *RecipeHandler) AddRecipe(c *gin.Context) {
	var form recipeForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_name and recipe_type are required"})
		return
	}

	id, _ := middleware.CurrentIdentity(c)
	if _, err := h.recipesSvc.Add(c.Request.Context(), form.toModel(), id.Username); err != nil {
		if errors.Is(err, recipes.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "Recipes already exists"})
			return
		}
		logger.Errorf("recipe insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add recipe"})
		return
	}
	metrics.RecipeMutations.WithLabelValues("create").Inc()
	pushFlash(c, h.sessionsSvc, "Recipe is Added")
	c.Redirect(http.StatusFound, "/get_recipes")
}

// EditRecipePage returns the recipe and the sorted taxonomy for the edit form.
func (h *RecipeHandler) EditRecipePage(c *gin.Context) {
	rec, err := h.recipesSvc.Get(c.Request.Context(), c.Param("recipe_id"))
	if err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		logger.Errorf("recipe lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}
	types, err := h.taxonomySvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("type listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "edit_recipe", "recipe": rec, "types": types, "flashes": popFlashes(c, h.sessionsSvc)})
}

// EditRecipe replaces the stored document with the submitted form in full.
// Omitted fields are dropped; created_by is whatever the form resubmits.
func (h *RecipeHandler) EditRecipe(c *gin.Context) {
	var form recipeForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_name and recipe_type are required"})
		return
	}

	if err := h.recipesSvc.Replace(c.Request.Context(), c.Param("recipe_id"), form.toModel()); err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		if errors.Is(err, recipes.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "Recipes already exists"})
			return
		}
		logger.Errorf("recipe replace failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}
	metrics.RecipeMutations.WithLabelValues("replace").Inc()
	pushFlash(c, h.sessionsSvc, "Recipe Successfully Updated")
	c.Redirect(http.StatusFound, "/get_recipes")
}

// DeleteRecipe removes the recipe by id. Deleting an id that matches nothing
// is a silent no-op; only malformed ids produce the 404 view.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipesSvc.Delete(c.Request.Context(), c.Param("recipe_id")); err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		logger.Errorf("recipe delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}
	metrics.RecipeMutations.WithLabelValues("delete").Inc()
	pushFlash(c, h.sessionsSvc, "Recipe Deleted")
	c.Redirect(http.StatusFound, "/get_recipes")
}
