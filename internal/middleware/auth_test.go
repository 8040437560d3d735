package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func authTestRouter() (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var seen uuid.UUID
	router.GET("/protected", Auth(testSecret), func(c *gin.Context) {
		id, ok := StudentID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "missing identity"})
			return
		}
		seen = id
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router, &seen
}

func doAuthRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
	msg, _ := body["message"].(string)
	return msg
}

func TestAuth_MissingToken(t *testing.T) {
	router, _ := authTestRouter()

	w := doAuthRequest(router, "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if msg := responseMessage(t, w); msg != "Token no proporcionado" {
		t.Errorf("Expected missing-token message, got %q", msg)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	router, _ := authTestRouter()

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		w := doAuthRequest(router, header)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Header %q: expected status 401, got %d", header, w.Code)
		}
		if msg := responseMessage(t, w); msg != "Formato de token inválido" {
			t.Errorf("Header %q: expected format message, got %q", header, msg)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	router, _ := authTestRouter()

	w := doAuthRequest(router, "Bearer not.a.token")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if msg := responseMessage(t, w); msg != "Token inválido" {
		t.Errorf("Expected invalid-token message, got %q", msg)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	router, _ := authTestRouter()

	token := signToken(t, "other_secret", jwt.MapClaims{
		"id":  uuid.Must(uuid.NewV4()).String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	w := doAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if msg := responseMessage(t, w); msg != "Token inválido" {
		t.Errorf("Expected invalid-token message, got %q", msg)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	router, _ := authTestRouter()

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":  uuid.Must(uuid.NewV4()).String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	w := doAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if msg := responseMessage(t, w); msg != "Token expirado" {
		t.Errorf("Expected expired-token message, got %q", msg)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	router, seen := authTestRouter()

	studentID := uuid.Must(uuid.NewV4())
	token := signToken(t, testSecret, jwt.MapClaims{
		"id":     studentID.String(),
		"correo": "ana@uni.edu",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	w := doAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if *seen != studentID {
		t.Errorf("Expected handler to see student %s, got %s", studentID, *seen)
	}
}

func TestAuth_TokenWithoutID(t *testing.T) {
	router, _ := authTestRouter()

	token := signToken(t, testSecret, jwt.MapClaims{
		"correo": "ana@uni.edu",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	w := doAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}
