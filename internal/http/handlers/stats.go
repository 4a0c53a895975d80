package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Stats returns the derived dashboard numbers in one shot.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"discipline_score":        h.Tasks.DisciplineScore(),
		"pending":                 h.Tasks.PendingCount(),
		"overdue":                 h.Tasks.OverdueCount(),
		"streak":                  h.History.CurrentStreak(),
		"recovery_debt":           h.History.RecoveryDebt(),
		"overall_completion_rate": h.History.OverallCompletionRate(),
	})
}

// GetHistory returns the last N days of buckets, oldest first.
func (h *Handler) GetHistory(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be 1..365"})
			return
		}
		days = n
	}

	c.JSON(http.StatusOK, gin.H{"days": h.History.RecentStats(days)})
}

func (h *Handler) ClearHistory(c *gin.Context) {
	h.History.Clear()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
