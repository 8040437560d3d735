package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/services"
)

type SubjectHandler struct {
	db             *gorm.DB
	subjectService services.SubjectService
}

func NewSubjectHandler(db *gorm.DB, subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{db: db, subjectService: subjectService}
}

func (h *SubjectHandler) Create(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.SubjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	subject, err := h.subjectService.Create(c.Request.Context(), h.db, studentID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, subject)
}

func (h *SubjectHandler) List(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	subjects, err := h.subjectService.List(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, subjects, len(subjects))
}

func (h *SubjectHandler) GetByID(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	subject, err := h.subjectService.GetByID(c.Request.Context(), h.db, studentID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subject)
}

func (h *SubjectHandler) Update(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.SubjectUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	subject, err := h.subjectService.Update(c.Request.Context(), h.db, studentID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subject)
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.subjectService.Delete(c.Request.Context(), h.db, studentID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Materia eliminada exitosamente")
}

func (h *SubjectHandler) Stats(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.subjectService.Stats(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
