// File: /controllers/dashboard_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carservice-api/services"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(db *gorm.DB, clock services.Clock) *DashboardController {
	return &DashboardController{
		dashboard: services.NewDashboardService(db, clock),
	}
}

// GetChartData returns spending per month, per service type and per car
func (dc *DashboardController) GetChartData(c *gin.Context) {
	data, err := dc.dashboard.ChartData(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, data)
}
