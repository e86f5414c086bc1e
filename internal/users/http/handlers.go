package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GestionTG-25-26/tg-backend/internal/auth"
	"github.com/GestionTG-25-26/tg-backend/internal/users/domain"
)

// Provisioner creates or updates local accounts.
type Provisioner interface {
	Provision(ctx context.Context, user *domain.User) error
}

// Handler exposes account provisioning over HTTP. Accounts are managed by the
// coordination office, so every route requires the jefatura role.
type Handler struct {
	svc Provisioner
}

// NewHandler creates a new usuarios handler.
func NewHandler(svc Provisioner) *Handler {
	return &Handler{svc: svc}
}

// Provision creates or updates an account with its global role.
func (h *Handler) Provision(c *gin.Context) {
	if auth.UserRole(c) != domain.RoleJefatura {
		c.JSON(http.StatusForbidden, gin.H{"error": "role jefatura required"})
		return
	}

	var req ProvisionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !domain.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role " + req.Role})
		return
	}

	user := &domain.User{
		FirebaseUID: req.FirebaseUID,
		Email:       req.Email,
		FullName:    req.FullName,
		Role:        req.Role,
	}
	if err := h.svc.Provision(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Register mounts the usuarios routes on the given group.
func Register(rg *gin.RouterGroup, h *Handler) {
	rg.POST("", h.Provision)
}
