package handler

import (
	"net/http"

	"chat-history/internal/services"
	"chat-history/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Create handles POST /api/chats and replies 201 with the new chat id as text.
func (h *ChatHandler) Create(c *gin.Context) {
	var req httpdto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request")
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		unauthorized(c)
		return
	}

	chatID, err := h.service.CreateChat(c.Request.Context(), userID, *req.Text)
	if err != nil {
		respondError(c, err, "Error creating chat!")
		return
	}

	c.String(http.StatusCreated, chatID)
}

// ListUserChats handles GET /api/userchats.
func (h *ChatHandler) ListUserChats(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		unauthorized(c)
		return
	}

	summaries, err := h.service.ListUserChatSummaries(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Error Fetching userchats!")
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// Get handles GET /api/chats/:id.
func (h *ChatHandler) Get(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		unauthorized(c)
		return
	}

	item, err := h.service.GetChat(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Error Fetching chat!")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Append handles PUT /api/chats/:id.
func (h *ChatHandler) Append(c *gin.Context) {
	var req httpdto.AppendTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request")
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		unauthorized(c)
		return
	}

	result, err := h.service.AppendTurn(c.Request.Context(), c.Param("id"), userID, services.AppendInput{
		Question: req.Question,
		Answer:   *req.Answer,
		Img:      req.Img,
	})
	if err != nil {
		respondError(c, err, "Error adding conversation!")
		return
	}

	c.JSON(http.StatusOK, result)
}
