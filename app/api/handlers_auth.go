package api

import (
	"log/slog"
	"net/http"

	"github.com/daycast/daycast/app/auth"
	"github.com/daycast/daycast/app/cfg"
	"github.com/daycast/daycast/app/database"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}

	existing, err := h.users.GetByUsername(req.Username)
	if err != nil {
		slog.Error("Database error", "operation", "get_user", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if existing != nil {
		respondError(c, 409, "Username already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("Password hashing failed", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	user := database.User{Username: req.Username, PasswordHash: hash}
	if err := h.users.Create(&user); err != nil {
		slog.Error("Database error", "operation", "create_user", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	token, err := auth.CreateToken(cfg.Get().JWTSecret, user.ID)
	if err != nil {
		slog.Error("Token creation failed", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, Username: user.Username})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body")
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil {
		slog.Error("Database error", "operation", "get_user", "error", err)
		respondError(c, 500, "Internal error")
		return
	}
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respondError(c, 401, "Invalid username or password")
		return
	}

	token, err := auth.CreateToken(cfg.Get().JWTSecret, user.ID)
	if err != nil {
		slog.Error("Token creation failed", "error", err)
		respondError(c, 500, "Internal error")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, Username: user.Username})
}
