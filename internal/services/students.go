package services

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
)

type StudentUpdate struct {
	Name       *string `json:"nombre"`
	Major      *string `json:"carrera"`
	University *string `json:"universidad"`
}

type StudentService interface {
	List(ctx context.Context, db *gorm.DB) ([]models.Student, error)
	GetByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (models.Student, error)
	Update(ctx context.Context, db *gorm.DB, callerID, id uuid.UUID, in StudentUpdate) (models.Student, error)
	Delete(ctx context.Context, db *gorm.DB, callerID, id uuid.UUID) error
}

type StudentServiceImpl struct{}

func NewStudentService() *StudentServiceImpl {
	return &StudentServiceImpl{}
}

func (s *StudentServiceImpl) List(ctx context.Context, db *gorm.DB) ([]models.Student, error) {
	students := []models.Student{}
	err := db.WithContext(ctx).Order("name ASC").Find(&students).Error
	return students, err
}

func (s *StudentServiceImpl) GetByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (models.Student, error) {
	var student models.Student
	err := db.WithContext(ctx).First(&student, "id = ?", id).Error
	return student, translateNotFound(err)
}

// Update only applies to the caller's own record. Fields left nil in the
// request keep their stored value; a present empty string clears the field.
func (s *StudentServiceImpl) Update(ctx context.Context, db *gorm.DB, callerID, id uuid.UUID, in StudentUpdate) (models.Student, error) {
	var student models.Student
	if err := db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return models.Student{}, translateNotFound(err)
	}
	if err := Authorize(student.ID, callerID); err != nil {
		return models.Student{}, err
	}

	changes := map[string]interface{}{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Major != nil {
		changes["major"] = *in.Major
	}
	if in.University != nil {
		changes["university"] = *in.University
	}

	if len(changes) > 0 {
		if err := db.WithContext(ctx).Model(&student).Updates(changes).Error; err != nil {
			return models.Student{}, err
		}
	}

	err := db.WithContext(ctx).First(&student, "id = ?", id).Error
	return student, translateNotFound(err)
}

func (s *StudentServiceImpl) Delete(ctx context.Context, db *gorm.DB, callerID, id uuid.UUID) error {
	var student models.Student
	if err := db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return translateNotFound(err)
	}
	if err := Authorize(student.ID, callerID); err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&student).Error
}
