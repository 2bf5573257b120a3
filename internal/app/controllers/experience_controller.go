package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/services"
	"github.com/arjunm/placementpulse/internal/middleware"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
)

// ExperienceController handles experience submission and browsing
type ExperienceController struct {
	experienceService services.ExperienceService
}

// NewExperienceController creates a new ExperienceController
func NewExperienceController(experienceService services.ExperienceService) *ExperienceController {
	return &ExperienceController{
		experienceService: experienceService,
	}
}

// Create handles experience submission
// @Summary Submit an interview experience
// @Description Creates a pending experience; moderators review it before it goes live
// @Tags experiences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExperienceRequest true "Experience"
// @Success 201 {object} dto.APIResponse{data=dto.ExperienceResponse} "Submitted for review"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Unknown company"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences [post]
func (c *ExperienceController) Create(ctx *gin.Context) {
	var req dto.CreateExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.experienceService.SubmitExperience(ctx, middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Experience submitted for review"))
}

// List returns approved experiences
// @Summary Browse approved experiences
// @Description Lists approved experiences; authenticated viewers see their own college only
// @Tags experiences
// @Produce json
// @Param company query string false "Company slug"
// @Param experienceType query string false "Internship, Full-Time or Apprenticeship"
// @Param result query string false "Selected, Not Selected or Pending"
// @Param search query string false "Role or company name"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} dto.APIResponse{data=dto.ExperienceListResponse} "Experiences"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences [get]
func (c *ExperienceController) List(ctx *gin.Context) {
	filter := dto.ExperienceFilter{
		CompanySlug:    ctx.Query("company"),
		ExperienceType: ctx.Query("experienceType"),
		Result:         ctx.Query("result"),
		Search:         ctx.Query("search"),
		SortBy:         ctx.Query("sortBy"),
		SortOrder:      ctx.Query("sortOrder"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.experienceService.ListExperiences(ctx, middleware.GetUserID(ctx), &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// ListMine returns the caller's own submissions in any status
// @Summary List own submissions
// @Tags experiences
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} dto.APIResponse{data=dto.ExperienceListResponse} "Experiences"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences/mine [get]
func (c *ExperienceController) ListMine(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.experienceService.ListMyExperiences(ctx, middleware.GetUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Get returns one experience
// @Summary Get an experience
// @Description Returns one experience; pending and rejected submissions only for the author
// @Tags experiences
// @Produce json
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExperienceResponse} "Experience"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences/{id} [get]
func (c *ExperienceController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.experienceService.GetExperience(ctx, id, middleware.GetUserID(ctx), middleware.IsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Update edits a pending submission
// @Summary Edit a pending experience
// @Description Author-only partial edit while the submission is pending review
// @Tags experiences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Param request body dto.UpdateExperienceRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ExperienceResponse} "Updated experience"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or experience no longer pending"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences/{id} [put]
func (c *ExperienceController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.experienceService.UpdateExperience(ctx, id, middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Experience updated"))
}

// Delete removes the caller's experience
// @Summary Delete own experience
// @Tags experiences
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences/{id} [delete]
func (c *ExperienceController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.experienceService.DeleteExperience(ctx, id, middleware.GetUserID(ctx), middleware.IsAdmin(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Experience deleted"))
}

// ToggleLike flips the caller's like
// @Summary Like or unlike an experience
// @Tags experiences
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleResponse} "Like state"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences/{id}/like [post]
func (c *ExperienceController) ToggleLike(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.experienceService.ToggleLike(ctx, id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// ToggleBookmark flips the caller's bookmark
// @Summary Bookmark or unbookmark an experience
// @Tags experiences
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleResponse} "Bookmark state"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences/{id}/bookmark [post]
func (c *ExperienceController) ToggleBookmark(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.experienceService.ToggleBookmark(ctx, id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
