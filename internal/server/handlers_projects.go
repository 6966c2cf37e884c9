// This file implements the project CRUD handlers. The tier limit check
// lives here: the store counts, the handler decides.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/en-arthur/initflow-be/pkg/types"
)

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	SandboxRef  *string `json:"sandbox_ref"`
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	owner, err := s.store.GetUser(principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if limit := owner.ProjectLimit(); limit >= 0 {
		count, err := s.store.CountProjects(owner.UserID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		if count >= limit {
			c.JSON(http.StatusForbidden, gin.H{"error": "project limit reached for tier"})
			return
		}
	}

	project, err := s.store.CreateProject(owner.UserID, req.Name, req.Description)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("project created", "project_id", project.ProjectID, "owner_id", owner.UserID)
	c.JSON(http.StatusCreated, project)
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ListProjects(principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.store.GetProject(c.Param("id"), principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Status != nil && !types.ValidProjectStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown project status"})
		return
	}

	project, err := s.store.UpdateProject(c.Param("id"), principal(c), types.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		SandboxRef:  req.SandboxRef,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	projectID := c.Param("id")
	if err := s.store.DeleteProject(projectID, principal(c)); err != nil {
		s.respondError(c, err)
		return
	}
	s.logger.Info("project deleted", "project_id", projectID)
	c.Status(http.StatusNoContent)
}
