package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/services"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) Create(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), h.db, studentID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	filters := services.TaskFilters{
		Status:    c.Query("estado"),
		Priority:  c.Query("prioridad"),
		SubjectID: c.Query("id_materia"),
	}

	tasks, err := h.taskService.List(c.Request.Context(), h.db, studentID, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, tasks, len(tasks))
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), h.db, studentID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.TaskUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), h.db, studentID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, task)
}

func (h *TaskHandler) Complete(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Complete(c.Request.Context(), h.db, studentID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tarea completada exitosamente",
		"data":    task,
	})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), h.db, studentID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Tarea eliminada exitosamente")
}

func (h *TaskHandler) Upcoming(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.Upcoming(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, tasks, len(tasks))
}

func (h *TaskHandler) Stats(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.taskService.Stats(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
