package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
)

const DefaultUniversity = "Universidad de Córdoba"

type RegisterRequest struct {
	Name       string `json:"nombre" binding:"required"`
	Email      string `json:"correo" binding:"required,email"`
	Password   string `json:"contrasena" binding:"required,min=6"`
	Major      string `json:"carrera"`
	University string `json:"universidad"`
}

type LoginRequest struct {
	Email    string `json:"correo" binding:"required,email"`
	Password string `json:"contrasena" binding:"required"`
}

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req RegisterRequest) (models.Student, string, error)
	Login(ctx context.Context, db *gorm.DB, req LoginRequest) (models.Student, string, error)
	Profile(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.Student, error)
}

type AuthServiceImpl struct {
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(secret string, tokenTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{secret: secret, tokenTTL: tokenTTL}
}

func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req RegisterRequest) (models.Student, string, error) {
	var existing models.Student
	err := db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return models.Student{}, "", ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Student{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	university := req.University
	if university == "" {
		university = DefaultUniversity
	}

	student := models.Student{
		ID:         uuid.Must(uuid.NewV4()),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		Major:      req.Major,
		University: university,
	}

	if err := db.WithContext(ctx).Create(&student).Error; err != nil {
		return models.Student{}, "", err
	}

	token, err := s.generateToken(student)
	if err != nil {
		return models.Student{}, "", err
	}

	return student, token, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req LoginRequest) (models.Student, string, error) {
	var student models.Student
	err := db.WithContext(ctx).Where("email = ?", req.Email).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, "", ErrInvalidCredentials
		}
		return models.Student{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)) != nil {
		return models.Student{}, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(student)
	if err != nil {
		return models.Student{}, "", err
	}

	return student, token, nil
}

func (s *AuthServiceImpl) Profile(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.Student, error) {
	var student models.Student
	err := db.WithContext(ctx).First(&student, "id = ?", studentID).Error
	return student, translateNotFound(err)
}

func (s *AuthServiceImpl) generateToken(student models.Student) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":     student.ID.String(),
		"correo": student.Email,
		"iat":    now.Unix(),
		"exp":    now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
