package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board/internal/service"
)

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		c.Error(err)
		return
	}

	session, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    string(req.Phone),
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.sendSession(c, http.StatusCreated, session, "User Registered!")
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		c.Error(err)
		return
	}

	session, err := h.users.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.sendSession(c, http.StatusOK, session, "User Logged In!")
}

func (h *Handler) logout(c *gin.Context) {
	h.clearTokenCookie(c)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Logged Out Successfully.",
	})
}

func (h *Handler) getUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userToResponse(currentUser(c)),
	})
}

func (h *Handler) sendSession(c *gin.Context, status int, session *service.Session, message string) {
	h.setTokenCookie(c, session.Token)
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"user":    userToResponse(session.User),
		"token":   session.Token,
	})
}
