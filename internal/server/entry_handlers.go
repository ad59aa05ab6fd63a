package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"CryptoRadar/internal/model"
	"CryptoRadar/internal/store"
)

func (s *Server) handleListEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": s.entries.Load()})
}

func (s *Server) handleAddEntry(c *gin.Context) {
	var entry model.UserEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry payload"})
		return
	}
	err := s.entries.Append(entry)
	switch {
	case errors.Is(err, store.ErrInvalidEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and symbol are required"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save entry"})
	default:
		c.JSON(http.StatusCreated, gin.H{"status": "added"})
	}
}
