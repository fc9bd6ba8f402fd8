// File: /controllers/service_type_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carservice-api/repositories"
	"carservice-api/utils"
)

type ServiceTypeController struct {
	types *repositories.ServiceTypeRepository
}

func NewServiceTypeController(db *gorm.DB) *ServiceTypeController {
	return &ServiceTypeController{types: repositories.NewServiceTypeRepository(db)}
}

// GetServiceTypes lists the service catalogue, keyed by category when
// grouped is set.
func (sc *ServiceTypeController) GetServiceTypes(c *gin.Context) {
	if grouped := c.Query("grouped"); grouped == "1" || grouped == "true" {
		byCategory, err := sc.types.ListGrouped(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": byCategory})
		return
	}

	types, err := sc.types.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendAll(c, types)
}
