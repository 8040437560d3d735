package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/services"
)

type PomodoroHandler struct {
	db              *gorm.DB
	pomodoroService services.PomodoroService
}

func NewPomodoroHandler(db *gorm.DB, pomodoroService services.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{db: db, pomodoroService: pomodoroService}
}

func (h *PomodoroHandler) Create(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.PomodoroInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.pomodoroService.Create(c.Request.Context(), h.db, studentID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, session)
}

func (h *PomodoroHandler) List(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	filters := services.PomodoroFilters{
		SubjectID: c.Query("id_materia"),
		DateFrom:  c.Query("fecha_inicio"),
		DateTo:    c.Query("fecha_fin"),
	}
	if done := c.Query("completada"); done != "" {
		completed := done == "true"
		filters.Completed = &completed
	}

	sessions, err := h.pomodoroService.List(c.Request.Context(), h.db, studentID, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, sessions, len(sessions))
}

func (h *PomodoroHandler) GetByID(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	session, err := h.pomodoroService.GetByID(c.Request.Context(), h.db, studentID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, session)
}

func (h *PomodoroHandler) Update(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.PomodoroUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.pomodoroService.Update(c.Request.Context(), h.db, studentID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, session)
}

// Complete closes a running session. The body is optional; clients may
// report final counters or let the stored ones stand.
func (h *PomodoroHandler) Complete(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.PomodoroCompletion
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			respondBindError(c, err)
			return
		}
	}

	session, err := h.pomodoroService.Complete(c.Request.Context(), h.db, studentID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sesión completada exitosamente",
		"data":    session,
	})
}

func (h *PomodoroHandler) Delete(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.pomodoroService.Delete(c.Request.Context(), h.db, studentID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Sesión eliminada exitosamente")
}

func (h *PomodoroHandler) Today(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	sessions, err := h.pomodoroService.Today(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, sessions, len(sessions))
}

func (h *PomodoroHandler) Stats(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.pomodoroService.Stats(c.Request.Context(), h.db, studentID, c.DefaultQuery("periodo", services.PeriodWeek))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

func (h *PomodoroHandler) StatsBySubject(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.pomodoroService.BySubject(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, stats, len(stats))
}

func (h *PomodoroHandler) StatsByDay(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.pomodoroService.ByDay(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, stats, len(stats))
}
