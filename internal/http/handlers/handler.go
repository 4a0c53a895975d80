package handlers

import (
	"reminder_webapp/internal/monitor"
	"reminder_webapp/internal/motivator"
	"reminder_webapp/internal/notify"
	"reminder_webapp/internal/store"
)

// Handler bundles the single-user app state shared by all routes.
type Handler struct {
	Tasks     *store.TaskStore
	History   *store.HistoryStore
	Monitor   *monitor.Monitor
	Motivator *motivator.Client
	Hub       *notify.Hub

	AccessCode string
}

func NewHandler(tasks *store.TaskStore, history *store.HistoryStore, mon *monitor.Monitor, mot *motivator.Client, hub *notify.Hub, accessCode string) *Handler {
	return &Handler{
		Tasks:      tasks,
		History:    history,
		Monitor:    mon,
		Motivator:  mot,
		Hub:        hub,
		AccessCode: accessCode,
	}
}
