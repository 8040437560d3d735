package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/services"
)

type DashboardHandler struct {
	db               *gorm.DB
	dashboardService services.DashboardService
}

func NewDashboardHandler(db *gorm.DB, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{db: db, dashboardService: dashboardService}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.Dashboard(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dashboard)
}

func (h *DashboardHandler) Weekly(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Weekly(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}

func (h *DashboardHandler) Today(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Today(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}
