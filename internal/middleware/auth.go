package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Williamtrix2022/uniplan/internal/utils"
)

const (
	// ContextStudentID is the gin context key carrying the authenticated
	// student's id.
	ContextStudentID = "student_id"
	// ContextStudentEmail carries the email claim of the bearer token.
	ContextStudentEmail = "student_email"
)

// Auth validates the Authorization header and loads the caller identity
// into the request context. Each failure mode gets its own message so
// clients can distinguish a missing token from an expired one.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Token no proporcionado")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abortUnauthorized(c, "Formato de token inválido")
			return
		}

		claims, err := utils.ParseJWT(parts[1], secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, "Token expirado")
				return
			}
			abortUnauthorized(c, "Token inválido")
			return
		}

		idClaim, _ := claims["id"].(string)
		studentID, err := uuid.FromString(idClaim)
		if err != nil {
			abortUnauthorized(c, "Token inválido")
			return
		}

		c.Set(ContextStudentID, studentID)
		if email, ok := claims["correo"].(string); ok {
			c.Set(ContextStudentEmail, email)
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

// StudentID extracts the authenticated caller set by Auth.
func StudentID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextStudentID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
