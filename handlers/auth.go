package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/crossingbook/crossingbook/internal/config"
	"github.com/crossingbook/crossingbook/internal/recipes"
	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/internal/tokens"
	"github.com/crossingbook/crossingbook/internal/users"
	"github.com/crossingbook/crossingbook/pkg/logger"
	"github.com/crossingbook/crossingbook/pkg/metrics"
	"github.com/crossingbook/crossingbook/pkg/middleware"
)

// credentialsForm is shared by the register and login forms.
type credentialsForm struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=32"`
	Password string `form:"password" json:"password" validate:"required,min=6,max=72"`
}

// AuthHandler holds dependencies for account and session routes.
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	recipesSvc  *recipes.Service
	validate    *validator.Validate
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, r *recipes.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, recipesSvc: r, validate: validator.New()}
}

// Register wires the auth routes.
func (h *AuthHandler) Register(r *gin.Engine) {
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.RegisterUser)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.GET("/profile/:username", middleware.RequireUser(), h.Profile)
	r.POST("/profile/:username", middleware.RequireUser(), h.Profile)

	// JSON token endpoint for non-browser clients
	r.POST("/api/token", h.IssueToken)
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register", "flashes": popFlashes(c, h.sessionsSvc)})
}

// RegisterUser creates an account, starts a session and redirects to the new
// user's profile.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required (username 3-32 chars, password at least 6)"})
		return
	}

	u, err := h.usersSvc.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateUsername) {
			metrics.AuthAttempts.WithLabelValues("register", "duplicate").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "Username is Taken"})
			return
		}
		logger.Errorf("register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()

	if err := h.startSession(c, u.Username, u.Role, "Registration Complete! Welcome to Animal Crossing Recipe!"); err != nil {
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+u.Username)
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login", "flashes": popFlashes(c, h.sessionsSvc)})
}

// Login authenticates and starts a session. Unknown username and wrong
// password produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.usersSvc.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			metrics.AuthAttempts.WithLabelValues("login", "invalid").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect Username and/or Password"})
			return
		}
		logger.Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()

	if err := h.startSession(c, u.Username, u.Role, "Good day, "+u.Username); err != nil {
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+u.Username)
}

// startSession creates the server-side session, sets the cookie and queues
// the welcome flash. Writes the error response itself on failure.
func (h *AuthHandler) startSession(c *gin.Context, username, role, flash string) error {
	token, err := h.sessionsSvc.Create(c.Request.Context(), username, role, h.cfg.Session.TTL)
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return err
	}
	c.SetCookie(h.cfg.Session.CookieName, token, int(h.cfg.Session.TTL.Seconds()), "/", "", false, true)
	if err := h.sessionsSvc.PushFlash(c.Request.Context(), token, flash); err != nil {
		logger.Warnf("failed to queue flash: %v", err)
	}
	return nil
}

// Logout clears the session unconditionally and redirects to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.CookieName); err == nil && token != "" {
		if err := h.sessionsSvc.Delete(c.Request.Context(), token); err != nil {
			logger.Warnf("failed to delete session: %v", err)
		}
	}
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// Profile renders the current user's profile. The username path segment is
// accepted but the canonical name always comes from the account record, and
// the recipe list is the full collection, both preserved from the original
// flow.
func (h *AuthHandler) Profile(c *gin.Context) {
	id, _ := middleware.CurrentIdentity(c)
	u, err := h.usersSvc.GetByUsername(c.Request.Context(), id.Username)
	if err != nil {
		logger.Errorf("profile account lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if u == nil {
		// the session outlived the account
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	list, err := h.recipesSvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("profile recipe listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     "profile",
		"username": u.Username,
		"is_admin": u.IsAdmin(),
		"recipes":  list,
		"flashes":  popFlashes(c, h.sessionsSvc),
	})
}

// IssueToken exchanges credentials for a JWT access token so API clients can
// call session-gated routes with an Authorization header.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req credentialsForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			metrics.AuthAttempts.WithLabelValues("token", "invalid").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect Username and/or Password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	metrics.AuthAttempts.WithLabelValues("token", "success").Inc()
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "expiresIn": int(h.cfg.JWT.AccessTokenTTL.Seconds())})
}
