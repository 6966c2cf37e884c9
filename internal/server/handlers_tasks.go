package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/en-arthur/initflow-be/pkg/types"
)

type createTaskRequest struct {
	AgentType    string         `json:"agent_type" binding:"required"`
	Description  string         `json:"description" binding:"required"`
	InputContext map[string]any `json:"input_context"`
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !types.ValidAgentType(req.AgentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown agent type"})
		return
	}

	task, err := s.store.CreateTask(c.Param("id"), req.AgentType, req.Description, req.InputContext, principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Param("id"), principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.store.GetTask(c.Param("taskId"), principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	// The route nests tasks under a project; a task fetched through the
	// wrong project id is not found there.
	if task.ProjectID != c.Param("id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}
