package services

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
)

type SubjectInput struct {
	Name       string `json:"nombre" binding:"required"`
	Code       string `json:"codigo"`
	Instructor string `json:"profesor"`
	Term       string `json:"semestre"`
	Credits    *int   `json:"creditos"`
	Schedule   string `json:"horario"`
	Color      string `json:"color"`
}

type SubjectUpdate struct {
	Name       *string `json:"nombre"`
	Code       *string `json:"codigo"`
	Instructor *string `json:"profesor"`
	Term       *string `json:"semestre"`
	Credits    *int    `json:"creditos"`
	Schedule   *string `json:"horario"`
	Color      *string `json:"color"`
}

type SubjectService interface {
	Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in SubjectInput) (models.Subject, error)
	List(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.Subject, error)
	GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Subject, error)
	Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in SubjectUpdate) (models.Subject, error)
	Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error
	Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.SubjectStats, error)
}

type SubjectServiceImpl struct{}

func NewSubjectService() *SubjectServiceImpl {
	return &SubjectServiceImpl{}
}

func (s *SubjectServiceImpl) Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in SubjectInput) (models.Subject, error) {
	credits := models.DefaultSubjectCredits
	if in.Credits != nil {
		credits = *in.Credits
	}
	color := in.Color
	if color == "" {
		color = models.DefaultSubjectColor
	}

	subject := models.Subject{
		ID:         uuid.Must(uuid.NewV4()),
		StudentID:  studentID,
		Name:       in.Name,
		Code:       in.Code,
		Instructor: in.Instructor,
		Term:       in.Term,
		Credits:    credits,
		Schedule:   in.Schedule,
		Color:      color,
	}

	if err := db.WithContext(ctx).Create(&subject).Error; err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

func (s *SubjectServiceImpl) List(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.Subject, error) {
	subjects := []models.Subject{}
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("name ASC").
		Find(&subjects).Error
	return subjects, err
}

func (s *SubjectServiceImpl) GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Subject, error) {
	var subject models.Subject
	if err := db.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		return models.Subject{}, translateNotFound(err)
	}
	if err := Authorize(subject.StudentID, studentID); err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

func (s *SubjectServiceImpl) Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in SubjectUpdate) (models.Subject, error) {
	subject, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return models.Subject{}, err
	}

	changes := map[string]interface{}{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Code != nil {
		changes["code"] = *in.Code
	}
	if in.Instructor != nil {
		changes["instructor"] = *in.Instructor
	}
	if in.Term != nil {
		changes["term"] = *in.Term
	}
	if in.Credits != nil {
		changes["credits"] = *in.Credits
	}
	if in.Schedule != nil {
		changes["schedule"] = *in.Schedule
	}
	if in.Color != nil {
		changes["color"] = *in.Color
	}

	if len(changes) > 0 {
		if err := db.WithContext(ctx).Model(&subject).Updates(changes).Error; err != nil {
			return models.Subject{}, err
		}
	}

	return s.GetByID(ctx, db, studentID, id)
}

func (s *SubjectServiceImpl) Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error {
	subject, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&subject).Error
}

func (s *SubjectServiceImpl) Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.SubjectStats, error) {
	var stats models.SubjectStats
	err := db.WithContext(ctx).
		Model(&models.Subject{}).
		Select("COUNT(*) AS total, COALESCE(SUM(credits), 0) AS total_credits, COUNT(DISTINCT term) AS terms").
		Where("student_id = ?", studentID).
		Scan(&stats).Error
	return stats, err
}
