// File: /controllers/reminder_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carservice-api/models"
	"carservice-api/repositories"
	"carservice-api/services"
	"carservice-api/utils"
)

const remindersPerPage = 15

type ReminderController struct {
	reminders *repositories.ReminderRepository
	service   *services.ReminderService
	clock     services.Clock
}

func NewReminderController(db *gorm.DB, service *services.ReminderService, clock services.Clock) *ReminderController {
	return &ReminderController{
		reminders: repositories.NewReminderRepository(db),
		service:   service,
		clock:     clock,
	}
}

type UpdateReminderRequest struct {
	Status models.ReminderStatus `json:"status" binding:"required"`
}

// GetReminders lists pending reminders, earliest due first
func (rc *ReminderController) GetReminders(c *gin.Context) {
	page := pageFromQuery(c, remindersPerPage)
	reminders, total, err := rc.reminders.ListPendingForUser(c.Request.Context(), c.GetString("user_id"), c.Query("car_id"), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendList(c, reminders, page, total)
}

// GetOverdueReminders lists pending reminders whose due date has passed
func (rc *ReminderController) GetOverdueReminders(c *gin.Context) {
	page := pageFromQuery(c, remindersPerPage)
	reminders, total, err := rc.reminders.ListOverdueForUser(c.Request.Context(), c.GetString("user_id"), rc.clock.Now(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendList(c, reminders, page, total)
}

// UpdateReminder completes or dismisses a pending reminder
func (rc *ReminderController) UpdateReminder(c *gin.Context) {
	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if !req.Status.IsValid() {
		utils.SendValidationError(c, "The status must be one of: pending, completed, or dismissed.")
		return
	}

	reminder, err := rc.service.Resolve(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Status)
	if err != nil {
		sendServiceError(c, err, "Reminder not found")
		return
	}
	utils.SendSuccess(c, "Reminder updated successfully", reminder)
}
