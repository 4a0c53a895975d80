package handlers

import (
	"errors"
	"net/http"
	"time"

	"reminder_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": h.Tasks.List()})
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Deadline string `json:"deadline"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deadline must be RFC3339"})
		return
	}

	task, err := h.Tasks.Add(req.Title, deadline)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *Handler) CompleteTask(c *gin.Context) {
	id := c.Param("id")

	if err := h.Tasks.Complete(id); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	h.Tasks.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
