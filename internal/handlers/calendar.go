package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/services"
)

type CalendarHandler struct {
	db              *gorm.DB
	calendarService services.CalendarService
}

func NewCalendarHandler(db *gorm.DB, calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{db: db, calendarService: calendarService}
}

func (h *CalendarHandler) Create(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.calendarService.Create(c.Request.Context(), h.db, studentID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, event)
}

func (h *CalendarHandler) List(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	filters := services.EventFilters{
		Type:      c.Query("tipo"),
		SubjectID: c.Query("id_materia"),
		Date:      c.Query("fecha"),
		DateFrom:  c.Query("fecha_inicio"),
		DateTo:    c.Query("fecha_fin"),
	}

	events, err := h.calendarService.List(c.Request.Context(), h.db, studentID, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, events, len(events))
}

func (h *CalendarHandler) GetByID(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	event, err := h.calendarService.GetByID(c.Request.Context(), h.db, studentID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, event)
}

func (h *CalendarHandler) Update(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.EventUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.calendarService.Update(c.Request.Context(), h.db, studentID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, event)
}

func (h *CalendarHandler) Delete(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.calendarService.Delete(c.Request.Context(), h.db, studentID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Evento eliminado exitosamente")
}

func (h *CalendarHandler) Today(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	events, err := h.calendarService.Today(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, events, len(events))
}

func (h *CalendarHandler) Week(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	events, err := h.calendarService.Week(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, events, len(events))
}

// Month defaults to the current month when the query omits anio/mes.
func (h *CalendarHandler) Month(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("anio", strconv.Itoa(now.Year())))
	if err != nil {
		respondBindError(c, err)
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("mes", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Mes inválido",
		})
		return
	}

	events, err := h.calendarService.Month(c.Request.Context(), h.db, studentID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, events, len(events))
}

func (h *CalendarHandler) Reminders(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	events, err := h.calendarService.Reminders(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, events, len(events))
}

func (h *CalendarHandler) Stats(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.calendarService.Stats(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
