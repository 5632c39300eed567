package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rika4698/event-management-server/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// ===============================
// Registration
// ===============================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Photo    string `json:"photo"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	requestID := middleware.GetRequestIDFromContext(c)

	err := h.service.Register(c.Request.Context(), RegisterInput(req), ip, requestID)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "User registered"})
}

// ===============================
// Login
// ===============================

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	requestID := middleware.GetRequestIDFromContext(c)

	token, user, err := h.service.Login(c.Request.Context(), LoginInput(req), ip, requestID)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Same message whether the email or the password failed
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "login failed"})
		return
	}

	// PasswordHash carries `json:"-"`, so the hash never reaches the client
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
