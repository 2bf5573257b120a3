package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/services"
	"github.com/arjunm/placementpulse/internal/middleware"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
)

// ChatController handles 1:1 messaging endpoints
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// Start opens (or returns) a conversation with another user
// @Summary Start a conversation
// @Description Idempotent per unordered user pair
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StartConversationRequest true "Other participant"
// @Success 200 {object} dto.APIResponse{data=dto.ConversationResponse} "Conversation"
// @Failure 400 {object} dto.ErrorResponse "Cannot chat with yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats/start [post]
func (c *ChatController) Start(ctx *gin.Context) {
	var req dto.StartConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.chatService.StartConversation(ctx, middleware.GetUserID(ctx), req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// List returns the caller's conversations
// @Summary List conversations
// @Description Most recent activity first, with unread counts and last message preview
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse} "Conversations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats [get]
func (c *ChatController) List(ctx *gin.Context) {
	resp, err := c.chatService.ListConversations(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Messages returns a page of the conversation history
// @Summary Get conversation messages
// @Description Oldest first; participant only
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} dto.APIResponse{data=dto.MessageListResponse} "Messages"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats/{id}/messages [get]
func (c *ChatController) Messages(ctx *gin.Context) {
	conversationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.chatService.GetMessages(ctx, conversationID, middleware.GetUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// MarkRead flags the other participant's messages as read
// @Summary Mark conversation read
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Success 200 {object} dto.APIResponse "Marked read"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats/{id}/read [put]
func (c *ChatController) MarkRead(ctx *gin.Context) {
	conversationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	updated, err := c.chatService.MarkConversationRead(ctx, conversationID, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"updated": updated}, "Conversation marked read"))
}

// Send appends a message to the conversation
// @Summary Send a message
// @Description Content required unless an attachment is present
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Sent message"
// @Failure 400 {object} dto.ErrorResponse "Empty message"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chats/{id}/messages [post]
func (c *ChatController) Send(ctx *gin.Context) {
	conversationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.chatService.SendMessage(ctx, conversationID, middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, ""))
}
