// internal/controller/dashboard_controller.go
package controller

import (
	"net/http"

	"github.com/autovilla/dealership-backend/internal/service"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.DashboardService.Stats()
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "", stats)
}
