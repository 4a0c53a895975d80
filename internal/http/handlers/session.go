package handlers

import (
	"crypto/subtle"
	"net/http"

	"reminder_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateSession exchanges the configured access code for a session token.
func (h *Handler) CreateSession(c *gin.Context) {
	if !service.Enabled() {
		c.JSON(http.StatusOK, gin.H{"token": "", "auth": "disabled"})
		return
	}

	var req struct {
		AccessCode string `json:"access_code"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.AccessCode), []byte(h.AccessCode)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong access code"})
		return
	}

	token, err := service.GenerateSessionToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
