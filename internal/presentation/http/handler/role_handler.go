package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/request"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
)

// RoleHandler handles application role management
type RoleHandler struct {
	roleService *service.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Me returns the caller's principal
func (h *RoleHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	response.OK(c, "Current user retrieved successfully", p)
}

// List handles listing role assignments
func (h *RoleHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	roles, err := h.roleService.ListRoles(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Roles retrieved successfully", roles)
}

// Assign handles granting a role
func (h *RoleHandler) Assign(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	role, err := h.roleService.AssignRole(c.Request.Context(), p, &service.AssignRoleInput{
		UserID: req.UserID,
		Role:   enum.AppRole(req.Role),
		Email:  req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Role assigned successfully", role)
}

// Remove handles revoking a role
func (h *RoleHandler) Remove(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	userID, ok := parseID(c, "user_id", "user")
	if !ok {
		return
	}

	if err := h.roleService.RemoveRole(c.Request.Context(), p, userID, enum.AppRole(c.Param("role"))); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
