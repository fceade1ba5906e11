package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentlife/taskboard/internal/dto"
	apierrors "github.com/studentlife/taskboard/internal/errors"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/services"
)

// DirectoryHandler serves departments and the staff roster.
type DirectoryHandler struct {
	directory *services.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directory *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListDepartments returns all departments, name ascending.
func (h *DirectoryHandler) ListDepartments(c *gin.Context) {
	departments, err := h.directory.ListDepartments()
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	out := make([]dto.DepartmentDTO, 0, len(departments))
	for _, d := range departments {
		out = append(out, dto.ToDepartmentDTO(d))
	}
	c.JSON(http.StatusOK, out)
}

// CreateDepartment creates a department from an inline-typed name.
func (h *DirectoryHandler) CreateDepartment(c *gin.Context) {
	type CreateDepartmentRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	dept, err := h.directory.CreateDepartment(req.Name)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentDTO(*dept))
}

// ListAssignable returns the non-admin roster for assignment pickers and
// staff management.
func (h *DirectoryHandler) ListAssignable(c *gin.Context) {
	members, err := h.directory.ListAssignableMembers()
	if err != nil {
		respondDirectoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileDTOs(members))
}

// ListStaff returns staff-role profiles only.
func (h *DirectoryHandler) ListStaff(c *gin.Context) {
	staff, err := h.directory.ListStaff()
	if err != nil {
		respondDirectoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileDTOs(staff))
}

// CreateStaff creates a staff member with optional role and password.
func (h *DirectoryHandler) CreateStaff(c *gin.Context) {
	type CreateStaffRequest struct {
		Email           string  `json:"email" binding:"required"`
		FullName        string  `json:"full_name" binding:"required"`
		DepartmentID    *string `json:"department_id"`
		Role            string  `json:"role"`
		InitialPassword string  `json:"initial_password"`
	}

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	profile, err := h.directory.CreateStaffMember(services.CreateStaffInput{
		Email:           req.Email,
		FullName:        req.FullName,
		DepartmentID:    req.DepartmentID,
		Role:            models.Role(req.Role),
		InitialPassword: req.InitialPassword,
	})
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProfileDTO(*profile))
}

// UpdateStaffRole applies a new role to a staff member.
func (h *DirectoryHandler) UpdateStaffRole(c *gin.Context) {
	type UpdateRoleRequest struct {
		Role string `json:"role" binding:"required"`
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	if err := h.directory.UpdateStaffRole(c.Param("id"), models.Role(req.Role)); err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated",
	})
}

// DeleteStaff removes a staff member and their assignments.
func (h *DirectoryHandler) DeleteStaff(c *gin.Context) {
	if err := h.directory.DeleteStaffMember(c.Param("id")); err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Staff member deleted",
	})
}

func toProfileDTOs(profiles []models.Profile) []dto.ProfileDTO {
	out := make([]dto.ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, dto.ToProfileDTO(p))
	}
	return out
}

func respondDirectoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailAndNameRequired),
		errors.Is(err, services.ErrRoleRequired),
		errors.Is(err, services.ErrRoleUnknown),
		errors.Is(err, services.ErrDepartmentNameRequired):
		apierrors.Validation(c, err.Error())
	case errors.Is(err, services.ErrEmailExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAdminProtected):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
