// File: /controllers/car_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carservice-api/models"
	"carservice-api/repositories"
	"carservice-api/services"
	"carservice-api/utils"
)

const (
	carsPerPage     = 12
	servicesPerPage = 15
)

type CarController struct {
	cars       *repositories.CarRepository
	records    *repositories.ServiceRecordRepository
	carService *services.CarService
	clock      services.Clock
}

func NewCarController(db *gorm.DB, clock services.Clock) *CarController {
	return &CarController{
		cars:       repositories.NewCarRepository(db),
		records:    repositories.NewServiceRecordRepository(db),
		carService: services.NewCarService(db, clock),
		clock:      clock,
	}
}

type CreateCarRequest struct {
	Brand          string `json:"brand" binding:"required,max=255"`
	Model          string `json:"model" binding:"required,max=255"`
	Year           int    `json:"year" binding:"required"`
	CurrentMileage *int   `json:"current_mileage" binding:"required,min=0"`
	PlateNumber    string `json:"plate_number" binding:"max=255"`
	VIN            string `json:"vin"`
	Color          string `json:"color" binding:"max=255"`
}

type UpdateCarRequest struct {
	Brand          *string `json:"brand" binding:"omitempty,min=1,max=255"`
	Model          *string `json:"model" binding:"omitempty,min=1,max=255"`
	Year           *int    `json:"year"`
	CurrentMileage *int    `json:"current_mileage" binding:"omitempty,min=0"`
	PlateNumber    *string `json:"plate_number" binding:"omitempty,max=255"`
	VIN            *string `json:"vin"`
	Color          *string `json:"color" binding:"omitempty,max=255"`
}

func (cc *CarController) validateYear(c *gin.Context, year int) bool {
	if !utils.IsValidCarYear(year, cc.clock.Now()) {
		utils.SendValidationError(c, fmt.Sprintf("year must be between %d and %d", utils.MinCarYear, cc.clock.Now().Year()+1))
		return false
	}
	return true
}

func validateVIN(c *gin.Context, vin string) bool {
	if !utils.IsValidVIN(vin) {
		utils.SendValidationError(c, fmt.Sprintf("vin must be at most %d characters", utils.MaxVINLen))
		return false
	}
	return true
}

// GetCars lists the user's cars
func (cc *CarController) GetCars(c *gin.Context) {
	page := pageFromQuery(c, carsPerPage)
	cars, total, err := cc.cars.ListForUser(c.Request.Context(), c.GetString("user_id"), repositories.CarListOptions{
		Search:  c.Query("search"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("sort_dir"),
		Page:    page,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	sendList(c, cars, page, total)
}

func (cc *CarController) CreateCar(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if !cc.validateYear(c, req.Year) || !validateVIN(c, req.VIN) {
		return
	}

	car := models.Car{
		UserID:         c.GetString("user_id"),
		Brand:          strings.TrimSpace(req.Brand),
		Model:          strings.TrimSpace(req.Model),
		Year:           req.Year,
		CurrentMileage: *req.CurrentMileage,
		PlateNumber:    req.PlateNumber,
		VIN:            strings.TrimSpace(req.VIN),
		Color:          req.Color,
	}
	if err := cc.cars.Create(c.Request.Context(), &car); err != nil {
		_ = c.Error(err)
		return
	}

	utils.SendCreated(c, "Car added successfully", car)
}

func (cc *CarController) GetCar(c *gin.Context) {
	car, err := cc.cars.FindForUserWithDetails(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		sendServiceError(c, err, "Car not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": car})
}

func (cc *CarController) UpdateCar(c *gin.Context) {
	car, err := cc.cars.FindForUser(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		sendServiceError(c, err, "Car not found")
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if req.Brand != nil {
		fields["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		fields["model"] = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		if !cc.validateYear(c, *req.Year) {
			return
		}
		fields["year"] = *req.Year
	}
	if req.CurrentMileage != nil {
		fields["current_mileage"] = *req.CurrentMileage
	}
	if req.PlateNumber != nil {
		fields["plate_number"] = *req.PlateNumber
	}
	if req.VIN != nil {
		if !validateVIN(c, *req.VIN) {
			return
		}
		fields["vin"] = strings.TrimSpace(*req.VIN)
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}

	if len(fields) > 0 {
		if err := cc.cars.Update(c.Request.Context(), car, fields); err != nil {
			_ = c.Error(err)
			return
		}
	}

	car, err = cc.cars.FindForUser(c.Request.Context(), car.UserID, car.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, "Car updated successfully", car)
}

func (cc *CarController) DeleteCar(c *gin.Context) {
	if err := cc.cars.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		sendServiceError(c, err, "Car not found")
		return
	}
	utils.SendSuccess(c, "Car deleted successfully", nil)
}

// GetCarStats returns cost totals, reminders and recent services of a car
func (cc *CarController) GetCarStats(c *gin.Context) {
	stats, err := cc.carService.Stats(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		sendServiceError(c, err, "Car not found")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetCarServices lists the service history of one car
func (cc *CarController) GetCarServices(c *gin.Context) {
	ctx := c.Request.Context()
	car, err := cc.cars.FindForUser(ctx, c.GetString("user_id"), c.Param("id"))
	if err != nil {
		sendServiceError(c, err, "Car not found")
		return
	}

	page := pageFromQuery(c, servicesPerPage)
	records, total, err := cc.records.ListForCar(ctx, car.ID, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendList(c, records, page, total)
}
