package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferhub/internal/http/middleware"
	"transferhub/internal/kvstore"
	"transferhub/internal/services"
)

var reminderStore kvstore.Store = kvstore.NewMemory()

// SetReminderStore swaps the reminder timestamp store; the router installs
// the redis-backed one when redis is reachable.
func SetReminderStore(s kvstore.Store) {
	if s != nil {
		reminderStore = s
	}
}

// ReminderStore exposes the active store for the background scheduler.
func ReminderStore() kvstore.Store {
	return reminderStore
}

// POST /api/supplier/SendDriverReminders/:id
func SendDriverReminders(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	recipient := middleware.GetUserEmail(c)
	if recipient == "" {
		RespondError(c, http.StatusBadRequest, "no recipient email on token", nil)
		return
	}

	svc := &services.ReminderService{
		Store:     reminderStore,
		Mailer:    appMailer,
		RequestID: middleware.GetRequestID(c),
	}
	sent, err := svc.RunForSupplier(c.Request.Context(), id, recipient)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders_sent": sent})
}
