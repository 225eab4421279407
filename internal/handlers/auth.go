package handlers

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/b2bnews/internal/auth"
	"github.com/dmitrymomot/b2bnews/internal/server"
)

// AuthHandler serves admin login and logout.
type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(a *auth.Service) *AuthHandler {
	return &AuthHandler{auth: a}
}

func (h *AuthHandler) Routes(r server.Router) {
	r.POST("/admin/login", h.login)
	r.POST("/admin/logout", h.logout)
	r.GET("/admin/me", h.me, server.FromHTTP(h.auth.Require))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User      string    `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *AuthHandler) login(c *server.Context) error {
	var in loginRequest
	if err := c.Bind(&in); err != nil {
		return err
	}
	sess, err := h.auth.Login(c.Response(), c.Request(), in.Username, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: sess.UserID, ExpiresAt: sess.ExpiresAt})
}

func (h *AuthHandler) logout(c *server.Context) error {
	if err := h.auth.Logout(c.Response(), c.Request()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) me(c *server.Context) error {
	sess, ok := auth.FromContext(c.Context())
	if !ok {
		return server.ErrUnauthorized("unauthorized")
	}
	return c.JSON(http.StatusOK, sessionResponse{User: sess.UserID, ExpiresAt: sess.ExpiresAt})
}
