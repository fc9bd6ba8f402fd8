// File: /controllers/service_record_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carservice-api/models"
	"carservice-api/repositories"
	"carservice-api/services"
	"carservice-api/utils"
)

type ServiceRecordController struct {
	records *repositories.ServiceRecordRepository
	logger  *services.ServiceRecordService
}

func NewServiceRecordController(db *gorm.DB, reminders *services.ReminderService) *ServiceRecordController {
	return &ServiceRecordController{
		records: repositories.NewServiceRecordRepository(db),
		logger:  services.NewServiceRecordService(db, reminders),
	}
}

type CreateServiceRecordRequest struct {
	CarID            string   `json:"car_id" binding:"required"`
	ServiceTypeID    uint     `json:"service_type_id" binding:"required"`
	ServiceDate      string   `json:"service_date" binding:"required"`
	MileageAtService *int     `json:"mileage_at_service" binding:"required,min=0"`
	Cost             *float64 `json:"cost" binding:"omitempty,min=0"`
	Notes            string   `json:"notes"`
	ServiceProvider  string   `json:"service_provider" binding:"max=255"`
}

type UpdateServiceRecordRequest struct {
	ServiceTypeID    *uint    `json:"service_type_id" binding:"omitempty,min=1"`
	ServiceDate      *string  `json:"service_date"`
	MileageAtService *int     `json:"mileage_at_service" binding:"omitempty,min=0"`
	Cost             *float64 `json:"cost" binding:"omitempty,min=0"`
	Notes            *string  `json:"notes"`
	ServiceProvider  *string  `json:"service_provider" binding:"omitempty,max=255"`
}

// GetServiceRecords lists the user's service history with optional filters
func (sc *ServiceRecordController) GetServiceRecords(c *gin.Context) {
	filter := models.ServiceRecordFilter{
		CarID:  c.Query("car_id"),
		Search: c.Query("search"),
	}

	if raw := c.Query("service_type_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.SendValidationError(c, "service_type_id must be a number")
			return
		}
		filter.ServiceTypeID = uint(id)
	}

	var err error
	if filter.DateFrom, err = utils.ParseOptionalDate(c.Query("date_from")); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if filter.DateTo, err = utils.ParseOptionalDate(c.Query("date_to")); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	page := pageFromQuery(c, servicesPerPage)
	records, total, err := sc.records.ListForUser(c.Request.Context(), c.GetString("user_id"), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendList(c, records, page, total)
}

// CreateServiceRecord logs a service, updates the car mileage and refreshes
// the reminder for the service type
func (sc *ServiceRecordController) CreateServiceRecord(c *gin.Context) {
	var req CreateServiceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	serviceDate, err := utils.ParseDate(req.ServiceDate)
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	record, err := sc.logger.LogService(c.Request.Context(), c.GetString("user_id"), services.ServiceRecordInput{
		CarID:            req.CarID,
		ServiceTypeID:    req.ServiceTypeID,
		ServiceDate:      serviceDate,
		MileageAtService: *req.MileageAtService,
		Cost:             req.Cost,
		Notes:            req.Notes,
		ServiceProvider:  req.ServiceProvider,
	})
	if err != nil {
		sendServiceError(c, err, "Car or service type not found")
		return
	}

	utils.SendCreated(c, "Service record added successfully", record)
}

func (sc *ServiceRecordController) GetServiceRecord(c *gin.Context) {
	record, err := sc.records.FindForUser(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		sendServiceError(c, err, "Service record not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (sc *ServiceRecordController) UpdateServiceRecord(c *gin.Context) {
	var req UpdateServiceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	update := services.ServiceRecordUpdate{
		ServiceTypeID:    req.ServiceTypeID,
		MileageAtService: req.MileageAtService,
		Cost:             req.Cost,
		Notes:            req.Notes,
		ServiceProvider:  req.ServiceProvider,
	}
	if req.ServiceDate != nil {
		date, err := utils.ParseDate(*req.ServiceDate)
		if err != nil {
			utils.SendValidationError(c, err.Error())
			return
		}
		update.ServiceDate = &date
	}

	record, err := sc.logger.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), update)
	if err != nil {
		sendServiceError(c, err, "Service record not found")
		return
	}
	utils.SendSuccess(c, "Service record updated successfully", record)
}

func (sc *ServiceRecordController) DeleteServiceRecord(c *gin.Context) {
	if err := sc.records.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		sendServiceError(c, err, "Service record not found")
		return
	}
	utils.SendSuccess(c, "Service record deleted successfully", nil)
}
