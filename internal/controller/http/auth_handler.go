package http

import (
	"errors"
	"net/http"

	"minigram/internal/entity"
	"minigram/internal/usecase"
	"minigram/pkg/flash"
	"minigram/pkg/logger"

	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 72 * 3600

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

func setSession(c *gin.Context, token string) {
	c.SetCookie("session", token, sessionCookieMaxAge, "/", "", false, true)
}

func clearSession(c *gin.Context) {
	c.SetCookie("session", "", -1, "/", "", false, true)
}

// LoginPage godoc
// @Summary      Login form
// @Description  Describes the fields the login form posts to /
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	message, _ := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"form":  gin.H{"action": "/", "fields": []string{"email", "password"}},
		"flash": message,
	})
}

// RegisterPage godoc
// @Summary      Signup form
// @Description  Describes the fields the signup form posts to /register
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /register [get]
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	message, _ := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"form":  gin.H{"action": "/register", "fields": []string{"name", "email", "username", "password", "password_again"}},
		"flash": message,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email and password; on success a session cookie is set and the client is redirected to the feed
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email formData string true "Email"
// @Param        password formData string true "Password"
// @Success      302
// @Router       / [post]
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, token, err := h.authUseCase.Login(email, password)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUserNotFound):
			flash.Set(c, "user not found")
		case errors.Is(err, entity.ErrWrongPassword):
			flash.Set(c, "wrong password")
		default:
			h.logger.Error("Login failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}

	setSession(c, token)
	flash.Set(c, "logged in")
	c.Redirect(http.StatusFound, "/")
}

// Register godoc
// @Summary      Create an account
// @Description  Register with name, email, username and matching passwords; success logs the new account in and redirects to the feed
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name formData string true "Display name"
// @Param        email formData string true "Email"
// @Param        username formData string true "Unique username"
// @Param        password formData string true "Password"
// @Param        password_again formData string true "Password confirmation"
// @Success      302
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	username := c.PostForm("username")
	password := c.PostForm("password")
	passwordAgain := c.PostForm("password_again")

	_, token, err := h.authUseCase.Register(name, email, username, password, passwordAgain)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrPasswordMismatch):
			flash.Set(c, "passwords do not match")
		case errors.Is(err, entity.ErrUsernameTaken):
			flash.Set(c, "username already exists")
		default:
			h.logger.Error("Registration failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	setSession(c, token)
	flash.Set(c, "successfully registered")
	c.Redirect(http.StatusFound, "/")
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the session cookie and redirects to the feed
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSession(c)
	c.Redirect(http.StatusFound, "/")
}
