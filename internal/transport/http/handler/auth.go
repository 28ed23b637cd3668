package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamehaven/internal/app"
	"gamehaven/internal/config"
)

type AuthHandler struct {
	authService *app.AuthService
	authConfig  config.AuthConfig
}

func NewAuthHandler(authService *app.AuthService, authConfig config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		authConfig:  authConfig,
	}
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	render(c, http.StatusOK, "register.html", nil)
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "login.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	result, err := h.authService.Register(app.RegisterInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		if messages := app.ValidationMessages(err); messages != nil {
			render(c, http.StatusBadRequest, "register.html", gin.H{"errors": messages})
			return
		}
		renderStorageError(c, "register.html", err, nil)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Login(c *gin.Context) {
	result, err := h.authService.Login(app.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		// One message for every credential failure; no hint which half
		// was wrong.
		if errors.Is(err, app.ErrInvalidCredential) {
			render(c, http.StatusUnauthorized, "login.html", gin.H{
				"errors": []string{"Invalid username / password."},
			})
			return
		}
		renderStorageError(c, "login.html", err, nil)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.authConfig.CookieName, "", -1, "/", "", h.authConfig.CookieSecure, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ViewUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := h.authService.GetUserByID(id)
	if err != nil {
		renderStorageError(c, "user.html", err, nil)
		return
	}
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	render(c, http.StatusOK, "user.html", gin.H{"profile": user})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := h.authConfig.JWTExpireHour * 3600
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.authConfig.CookieName, token, maxAge, "/", "", h.authConfig.CookieSecure, true)
}
