package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/Williamtrix2022/uniplan/internal/middleware"
	"github.com/Williamtrix2022/uniplan/internal/services"
)

// productionMode suppresses internal error detail in error envelopes.
// Set once at startup from the loaded configuration.
var productionMode bool

func SetProductionMode(enabled bool) {
	productionMode = enabled
}

// respondData wraps a payload in the standard envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondList adds a count alongside collection payloads.
func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

func respondBindError(c *gin.Context, err error) {
	body := gin.H{
		"success": false,
		"message": "Datos inválidos",
	}
	if !productionMode {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

// respondError maps service sentinels to HTTP statuses. Unknown errors
// become 500; the detail is hidden outside development.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Recurso no encontrado",
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "No tienes permiso para acceder a este recurso",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Credenciales inválidas",
		})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "El correo ya está registrado",
		})
	case errors.Is(err, services.ErrAlreadyCompleted),
		errors.Is(err, services.ErrSubjectNotOwned),
		errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
	default:
		log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		body := gin.H{
			"success": false,
			"message": "Error interno del servidor",
		}
		if !productionMode {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// pathID parses the :id route parameter. A malformed value is reported
// as a validation failure before any query runs.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Identificador inválido",
		})
		return uuid.Nil, false
	}
	return id, true
}

// callerID reads the authenticated student from the gin context. The
// auth middleware guarantees it is set on protected routes.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.StudentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Token no proporcionado",
		})
		return uuid.Nil, false
	}
	return id, true
}
