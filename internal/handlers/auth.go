package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/knagata/taskflow/internal/constants"
	"github.com/knagata/taskflow/internal/dto"
	apierrors "github.com/knagata/taskflow/internal/errors"
	"github.com/knagata/taskflow/internal/middleware"
	"github.com/knagata/taskflow/internal/services"
)

// AuthHandler coordinates registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Landing renders the landing page, or sends authenticated users straight
// to the dashboard.
func (h *AuthHandler) Landing(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"flashes": takeFlashes(c),
	})
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{
		"flashes": takeFlashes(c),
	})
}

// Register creates a new account from the submitted form.
func (h *AuthHandler) Register(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	_, err := h.authService.Register(services.RegisterInput{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	})
	if err != nil {
		addFlash(c, constants.FlashError, registerErrorMessage(err))
		c.HTML(http.StatusOK, "register.html", gin.H{
			"flashes": takeFlashes(c),
		})
		return
	}

	addFlash(c, constants.FlashSuccess, "Registration successful! Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"flashes": takeFlashes(c),
		"next":    c.Query("next"),
	})
}

// Login authenticates the submitted credentials and initializes the
// session. Failures re-render the form with a single generic message.
func (h *AuthHandler) Login(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		addFlash(c, constants.FlashError, "Invalid username or password")
		c.HTML(http.StatusOK, "login.html", gin.H{
			"flashes": takeFlashes(c),
			"next":    c.Query("next"),
		})
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		addFlash(c, constants.FlashError, "Failed to save session")
		c.HTML(http.StatusOK, "login.html", gin.H{
			"flashes": takeFlashes(c),
		})
		return
	}

	addFlash(c, constants.FlashSuccess, fmt.Sprintf("Welcome back, %s!", user.Username))

	if next := c.Query("next"); next != "" {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session identity and returns to the landing page.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.AddFlash("You have been logged out", constants.FlashInfo)
	_ = session.Save()

	c.Redirect(http.StatusFound, "/")
}

// CurrentUser returns the authenticated user as JSON.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*user),
	})
}

// isAuthenticated reports whether the session carries an identity. Public
// pages use this directly since they run without the auth middleware.
func isAuthenticated(c *gin.Context) bool {
	session := sessions.Default(c)
	return session.Get(constants.ContextKeyUserID) != nil
}

func registerErrorMessage(err error) string {
	switch err {
	case services.ErrMissingFields:
		return "All fields are required"
	case services.ErrPasswordMismatch:
		return "Passwords do not match"
	case services.ErrUsernameTaken:
		return "Username already exists"
	case services.ErrEmailTaken:
		return "Email already registered"
	default:
		return "Registration failed, please try again"
	}
}
