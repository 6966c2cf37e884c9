// This file implements the health and auth handlers: signup, login, and
// the identity probe.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/en-arthur/initflow-be/internal/auth"
	"github.com/en-arthur/initflow-be/pkg/types"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  *types.User `json:"user"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.store.CreateUser(req.Email, req.Name, hash)
	if err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.issuer.Issue(user.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("user signed up", "user_id", user.UserID)
	c.JSON(http.StatusCreated, tokenResponse{Token: token, User: user})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// An unknown email and a wrong password produce the same response.
	user, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := s.issuer.Issue(user.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token, User: user})
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.store.GetUser(principal(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
