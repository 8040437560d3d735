package utils

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

// ParseJWT verifies an HS256 token and returns its claims.
func ParseJWT(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func IsValidUUID(s string) bool {
	_, err := uuid.FromString(s)
	return err == nil
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	timeRe  = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	colorRe = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsValidTime accepts 24-hour HH:MM.
func IsValidTime(s string) bool {
	return timeRe.MatchString(s)
}

func IsValidPriority(s string) bool {
	return s == "baja" || s == "media" || s == "alta"
}

func IsValidTaskStatus(s string) bool {
	return s == "pendiente" || s == "en_progreso" || s == "completada"
}

func IsValidEventType(s string) bool {
	switch s {
	case "clase", "examen", "tarea", "evento", "otro":
		return true
	}
	return false
}

func IsValidColor(s string) bool {
	return colorRe.MatchString(s)
}

func IsValidDateRange(start, end string) bool {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return false
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return false
	}
	return !from.After(to)
}
