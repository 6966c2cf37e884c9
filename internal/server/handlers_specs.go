// This file implements the spec document handlers. The store holds the
// version ladder; a lost write race comes back as 409 and the client
// re-reads before retrying.
package server

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/en-arthur/initflow-be/pkg/types"
)

type writeSpecRequest struct {
	Content        string  `json:"content" binding:"required"`
	ChangesSummary *string `json:"changes_summary"`
}

type rollbackSpecRequest struct {
	VersionID string `json:"version_id" binding:"required"`
}

// specFileType validates the :fileType path parameter. The store treats
// the key as opaque; the API only exposes the standard documents.
func specFileType(c *gin.Context) (string, bool) {
	fileType := c.Param("fileType")
	if !slices.Contains(types.StandardSpecTypes, fileType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown spec file type"})
		return "", false
	}
	return fileType, true
}

func (s *Server) handleGetSpec(c *gin.Context) {
	fileType, ok := specFileType(c)
	if !ok {
		return
	}
	sf, err := s.store.GetCurrentSpec(c.Param("id"), fileType, principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sf)
}

func (s *Server) handleWriteSpec(c *gin.Context) {
	fileType, ok := specFileType(c)
	if !ok {
		return
	}
	var req writeSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sf, err := s.store.WriteSpec(c.Param("id"), fileType, req.Content, req.ChangesSummary, principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("spec written", "project_id", sf.ProjectID, "file_type", fileType, "version", sf.Version)
	c.JSON(http.StatusOK, sf)
}

func (s *Server) handleListSpecVersions(c *gin.Context) {
	fileType, ok := specFileType(c)
	if !ok {
		return
	}
	versions, err := s.store.ListSpecHistory(c.Param("id"), fileType, principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (s *Server) handleRollbackSpec(c *gin.Context) {
	fileType, ok := specFileType(c)
	if !ok {
		return
	}
	var req rollbackSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sf, err := s.store.RollbackSpec(c.Param("id"), fileType, req.VersionID, principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("spec rolled back", "project_id", sf.ProjectID, "file_type", fileType, "version", sf.Version)
	c.JSON(http.StatusOK, sf)
}
