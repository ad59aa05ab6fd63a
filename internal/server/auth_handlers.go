package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"CryptoRadar/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	if !s.accounts.Verify(req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := s.tokens.Issue(req.Email, s.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	err := s.accounts.Register(req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
	case errors.Is(err, auth.ErrInvalidAccount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save account"})
	default:
		c.JSON(http.StatusCreated, gin.H{"email": req.Email})
	}
}
