package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/studentlife/taskboard/internal/errors"
	"github.com/studentlife/taskboard/internal/middleware"
	"github.com/studentlife/taskboard/internal/services"
)

// MessageHandler serves the per-task and admin message threads.
type MessageHandler struct {
	messages *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send appends a message from the caller. When no recipient is named the
// message goes to the admin.
func (h *MessageHandler) Send(c *gin.Context) {
	type SendRequest struct {
		ToUserID string  `json:"to_user_id"`
		Body     string  `json:"body" binding:"required"`
		TaskID   *string `json:"task_id"`
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	callerID, _ := middleware.GetUserID(c)

	toUserID := req.ToUserID
	if toUserID == "" {
		adminID, err := h.messages.AdminID()
		if err != nil {
			apierrors.InternalError(c, "")
			return
		}
		toUserID = adminID
	}

	msg, err := h.messages.SendMessage(callerID, toUserID, req.Body, req.TaskID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// Conversation returns the thread between the caller and another user,
// oldest first.
func (h *MessageHandler) Conversation(c *gin.Context) {
	callerID, _ := middleware.GetUserID(c)

	messages, err := h.messages.Conversation(callerID, c.Param("userID"))
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// AdminConversations lists every counterparty the admin has exchanged
// messages with, most recent first.
func (h *MessageHandler) AdminConversations(c *gin.Context) {
	summaries, err := h.messages.AdminConversations()
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMessageArgsRequired):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
