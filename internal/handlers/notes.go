package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/services"
)

type NoteHandler struct {
	db          *gorm.DB
	noteService services.NoteService
}

func NewNoteHandler(db *gorm.DB, noteService services.NoteService) *NoteHandler {
	return &NoteHandler{db: db, noteService: noteService}
}

func (h *NoteHandler) Create(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.NoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), h.db, studentID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, note)
}

func (h *NoteHandler) List(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	filters := services.NoteFilters{
		SubjectID: c.Query("id_materia"),
		Search:    c.Query("buscar"),
	}
	if fav := c.Query("favorito"); fav != "" {
		favorite := fav == "true"
		filters.Favorite = &favorite
	}

	notes, err := h.noteService.List(c.Request.Context(), h.db, studentID, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, notes, len(notes))
}

func (h *NoteHandler) GetByID(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetByID(c.Request.Context(), h.db, studentID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in services.NoteUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), h.db, studentID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, note)
}

func (h *NoteHandler) ToggleFavorite(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	note, err := h.noteService.ToggleFavorite(c.Request.Context(), h.db, studentID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), h.db, studentID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Nota eliminada exitosamente")
}

func (h *NoteHandler) Favorites(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	notes, err := h.noteService.Favorites(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, notes, len(notes))
}

func (h *NoteHandler) Recent(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limite", "10"))

	notes, err := h.noteService.Recent(c.Request.Context(), h.db, studentID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, notes, len(notes))
}

func (h *NoteHandler) Stats(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := h.noteService.Stats(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
