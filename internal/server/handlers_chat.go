package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/en-arthur/initflow-be/pkg/types"
)

type appendChatRequest struct {
	Role        string           `json:"role"`
	Content     string           `json:"content" binding:"required"`
	Attachments []map[string]any `json:"attachments"`
}

func (s *Server) handleAppendChat(c *gin.Context) {
	var req appendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	role := req.Role
	if role == "" {
		role = types.ChatRoleUser
	}

	msg, err := s.store.AppendChatMessage(c.Param("id"), role, req.Content, req.Attachments, principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (s *Server) handleChatHistory(c *gin.Context) {
	messages, err := s.store.ListChatMessages(c.Param("id"), principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
