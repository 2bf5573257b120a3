package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/services"
	"github.com/arjunm/placementpulse/internal/middleware"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
)

// AdminController handles moderation and administration endpoints
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// Dashboard returns aggregate platform statistics
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Dashboard statistics"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	stats, err := c.adminService.GetDashboardStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}

// ListExperiences returns experiences in any moderation state
// @Summary List experiences for moderation
// @Description Any status; non-System-college admins only see their own college
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param college query string false "College filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} dto.APIResponse{data=dto.ExperienceListResponse} "Experiences"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/experiences [get]
func (c *AdminController) ListExperiences(ctx *gin.Context) {
	filter := dto.ExperienceFilter{
		Status:         ctx.Query("status"),
		College:        ctx.Query("college"),
		CompanySlug:    ctx.Query("company"),
		ExperienceType: ctx.Query("experienceType"),
		Result:         ctx.Query("result"),
		Search:         ctx.Query("search"),
		SortBy:         ctx.Query("sortBy"),
		SortOrder:      ctx.Query("sortOrder"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.adminService.ListExperiences(ctx, middleware.GetUserID(ctx), &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetExperience returns full detail regardless of status
// @Summary Get an experience for moderation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExperienceResponse} "Experience"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/experiences/{id} [get]
func (c *AdminController) GetExperience(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.adminService.GetExperience(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Approve publishes a pending experience
// @Summary Approve a pending experience
// @Description Only pending submissions can be approved; the author is notified
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExperienceResponse} "Approved experience"
// @Failure 400 {object} dto.ErrorResponse "Experience is not pending"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/experiences/{id}/approve [put]
func (c *AdminController) Approve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.adminService.ApproveExperience(ctx, id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Experience approved"))
}

// Reject turns down a pending experience
// @Summary Reject a pending experience
// @Description Requires a reason of at least 10 characters; the author is notified
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Param request body dto.RejectExperienceRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.ExperienceResponse} "Rejected experience"
// @Failure 400 {object} dto.ErrorResponse "Missing or short reason, or experience not pending"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/experiences/{id}/reject [put]
func (c *AdminController) Reject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.adminService.RejectExperience(ctx, id, middleware.GetUserID(ctx), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Experience rejected"))
}

// DeleteExperience removes an experience in any status
// @Summary Delete any experience
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/experiences/{id} [delete]
func (c *AdminController) DeleteExperience(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteExperience(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Experience deleted"))
}

// ListUsers returns non-admin accounts
// @Summary List student accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name, email or college"
// @Param college query string false "College filter"
// @Param course query string false "Course filter"
// @Param year query string false "Year filter"
// @Param isActive query string false "true, false or all"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	filter := dto.UserFilter{
		Search:    ctx.Query("search"),
		College:   ctx.Query("college"),
		Course:    ctx.Query("course"),
		Year:      ctx.Query("year"),
		IsActive:  ctx.Query("isActive"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.adminService.ListUsers(ctx, &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// ToggleUserStatus flips a student account between active and deactivated
// @Summary Toggle a student's active flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated user"
// @Failure 403 {object} dto.ErrorResponse "Target is an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/toggle-status [put]
func (c *AdminController) ToggleUserStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.adminService.ToggleUserStatus(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "User status updated"))
}
