package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/services"
	"github.com/arjunm/placementpulse/internal/middleware"
)

// CommentController handles experience discussion threads
type CommentController struct {
	commentService services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService services.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// Create adds a comment or reply to an experience
// @Summary Comment on an experience
// @Description Creates a comment; a reply to a reply attaches to the thread root
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Created comment"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Experience or parent comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences/{id}/comments [post]
func (c *CommentController) Create(ctx *gin.Context) {
	experienceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.commentService.AddComment(ctx, experienceID, middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Comment added"))
}

// List returns the full comment thread of an experience
// @Summary List comments
// @Description Top-level comments newest first, replies oldest first
// @Tags comments
// @Produce json
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommentListResponse} "Comment thread"
// @Failure 404 {object} dto.ErrorResponse "Experience not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /experiences/{id}/comments [get]
func (c *CommentController) List(ctx *gin.Context) {
	experienceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.commentService.ListComments(ctx, experienceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Delete soft-deletes a comment
// @Summary Delete a comment
// @Description Authors remove their own comments, admins any; replies go with their root
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.commentService.DeleteComment(ctx, commentID, middleware.GetUserID(ctx), middleware.IsAdmin(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Comment deleted"))
}
