package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/services"
)

type StudentHandler struct {
	db             *gorm.DB
	studentService services.StudentService
}

func NewStudentHandler(db *gorm.DB, studentService services.StudentService) *StudentHandler {
	return &StudentHandler{db: db, studentService: studentService}
}

func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context(), h.db)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, students, len(students))
}

func (h *StudentHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, student)
}

func (h *StudentHandler) Update(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.StudentUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), h.db, studentID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, student)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), h.db, studentID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Estudiante eliminado exitosamente")
}
