package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/configs"
	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/repo"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/logging"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/security"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type AuthHandler struct {
	cfg   configs.Config
	users usecase.UserRepo
}

func NewAuthHandler(cfg configs.Config, users usecase.UserRepo) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users}
}

type signupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password (6+ chars) are required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if existing, err := h.users.GetByEmail(ctx, email); err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	u := &usecase.UserRecord{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         string(domain.RoleCustomer),
		IsVerified:   false,
	}
	if err := h.users.Create(ctx, u); err != nil {
		logging.From(c).Error("signup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	h.respond(c, http.StatusCreated, u, domain.RoleCustomer)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logging.From(c).Error("login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if !security.VerifyPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	role, err := domain.ParseRole(u.Role)
	if err != nil {
		// A row with a bad role is a data problem, not the user's.
		logging.From(c).Error("user row carries unknown role", "user_id", u.ID, "role", u.Role)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	h.respond(c, http.StatusOK, u, role)
}

func (h *AuthHandler) respond(c *gin.Context, status int, u *usecase.UserRecord, role domain.Role) {
	token, err := security.IssueToken(h.cfg, u.ID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(status, gin.H{
		"user":  toUserResp(u, role),
		"token": token,
	})
}
