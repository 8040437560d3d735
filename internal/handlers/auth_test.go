package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
	"github.com/Williamtrix2022/uniplan/internal/services"
)

type stubAuthService struct {
	register func(req services.RegisterRequest) (models.Student, string, error)
	login    func(req services.LoginRequest) (models.Student, string, error)
	profile  func(id uuid.UUID) (models.Student, error)
}

func (s *stubAuthService) Register(ctx context.Context, db *gorm.DB, req services.RegisterRequest) (models.Student, string, error) {
	return s.register(req)
}
func (s *stubAuthService) Login(ctx context.Context, db *gorm.DB, req services.LoginRequest) (models.Student, string, error) {
	return s.login(req)
}
func (s *stubAuthService) Profile(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.Student, error) {
	return s.profile(studentID)
}

func authRouter(svc services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(nil, svc)

	router.POST("/api/auth/registro", handler.Register)
	router.POST("/api/auth/login", handler.Login)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{
		register: func(req services.RegisterRequest) (models.Student, string, error) {
			return models.Student{Name: req.Name, Email: req.Email}, "signed-token", nil
		},
	}
	router := authRouter(svc)

	w := postJSON(router, "/api/auth/registro",
		`{"nombre":"Ana","correo":"ana@uni.edu","contrasena":"secreta1"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	body := parseBody(t, w)
	data, _ := body["data"].(map[string]interface{})
	if data["token"] != "signed-token" {
		t.Errorf("Expected token in response, got %v", data["token"])
	}
	student, _ := data["estudiante"].(map[string]interface{})
	if student["correo"] != "ana@uni.edu" {
		t.Errorf("Expected student email, got %v", student["correo"])
	}
	if _, leaked := student["contrasena"]; leaked {
		t.Error("Password hash must never be serialized")
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	svc := &stubAuthService{
		register: func(req services.RegisterRequest) (models.Student, string, error) {
			return models.Student{}, "", services.ErrDuplicateEmail
		},
	}
	router := authRouter(svc)

	w := postJSON(router, "/api/auth/registro",
		`{"nombre":"Ana","correo":"ana@uni.edu","contrasena":"secreta1"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for duplicate email, got %d", w.Code)
	}
}

func TestAuthHandler_Register_RejectsShortPassword(t *testing.T) {
	svc := &stubAuthService{
		register: func(req services.RegisterRequest) (models.Student, string, error) {
			t.Fatal("Service must not be called for invalid input")
			return models.Student{}, "", nil
		},
	}
	router := authRouter(svc)

	w := postJSON(router, "/api/auth/registro",
		`{"nombre":"Ana","correo":"ana@uni.edu","contrasena":"123"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for short password, got %d", w.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		login: func(req services.LoginRequest) (models.Student, string, error) {
			return models.Student{Email: req.Email}, "signed-token", nil
		},
	}
	router := authRouter(svc)

	w := postJSON(router, "/api/auth/login",
		`{"correo":"ana@uni.edu","contrasena":"secreta1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	body := parseBody(t, w)
	data, _ := body["data"].(map[string]interface{})
	if data["token"] != "signed-token" {
		t.Errorf("Expected token in response, got %v", data["token"])
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{
		login: func(req services.LoginRequest) (models.Student, string, error) {
			return models.Student{}, "", services.ErrInvalidCredentials
		},
	}
	router := authRouter(svc)

	w := postJSON(router, "/api/auth/login",
		`{"correo":"ana@uni.edu","contrasena":"incorrecta"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for bad credentials, got %d", w.Code)
	}
}
