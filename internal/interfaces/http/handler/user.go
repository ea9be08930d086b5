package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shelfmaster/backend/internal/application/identity"
	"github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/interfaces/http/dto"
)

// UserHandler handles user account API endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Get handles GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List handles GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.Normalize()

	var (
		users []identityapp.UserResponse
		total int64
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, total, err = h.userService.ListByRole(c.Request.Context(), identity.UserRole(role), req.Offset(), req.PageSize)
	} else {
		users, total, err = h.userService.List(c.Request.Context(), req.Offset(), req.PageSize)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, req.Page, req.PageSize)
}

// ChangePassword handles POST /api/v1/users/me/password for the
// authenticated user
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate handles POST /api/v1/users/:id/deactivate
func (h *UserHandler) Deactivate(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.Deactivate(c.Request.Context(), actor, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Activate handles POST /api/v1/users/:id/activate
func (h *UserHandler) Activate(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.Activate(c.Request.Context(), actor, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
