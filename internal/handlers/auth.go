package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/services"
)

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService) *AuthHandler {
	return &AuthHandler{db: db, authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	student, token, err := h.authService.Register(c.Request.Context(), h.db, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Estudiante registrado exitosamente",
		"data": gin.H{
			"estudiante": student,
			"token":      token,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	student, token, err := h.authService.Login(c.Request.Context(), h.db, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inicio de sesión exitoso",
		"data": gin.H{
			"estudiante": student,
			"token":      token,
		},
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	student, err := h.authService.Profile(c.Request.Context(), h.db, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, student)
}
