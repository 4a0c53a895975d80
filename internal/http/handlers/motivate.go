package handlers

import (
	"net/http"

	"reminder_webapp/internal/motivator"

	"github.com/gin-gonic/gin"
)

// Motivate proxies a chat-completion request for an overdue task title.
// It always answers 200 with a message; upstream failures degrade to a
// local template inside the client.
func Motivate(client *motivator.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title string `json:"title"`
		}
		if err := c.BindJSON(&req); err != nil || req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": client.Message(c.Request.Context(), req.Title)})
	}
}

func (h *Handler) Motivate(c *gin.Context) {
	Motivate(h.Motivator)(c)
}
