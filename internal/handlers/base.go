package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"yilin/internal/repository"
)

// respondError maps repository failures onto the API status codes: missing
// documents get 404, payloads the store refused get 400, everything else 500
// with a server-side log line. The error itself is forwarded untouched from
// the store, no retries, no rewriting.
func respondError(c *gin.Context, err error) {
	switch {
	case repository.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case repository.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("comment api: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
