package services

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
)

type NoteInput struct {
	SubjectID *uuid.UUID `json:"id_materia"`
	Title     string     `json:"titulo" binding:"required"`
	Content   string     `json:"contenido" binding:"required"`
	Tags      string     `json:"etiquetas"`
	Favorite  bool       `json:"favorito"`
}

type NoteUpdate struct {
	SubjectID OptionalUUID `json:"id_materia"`
	Title     *string      `json:"titulo"`
	Content   *string      `json:"contenido"`
	Tags      *string      `json:"etiquetas"`
	Favorite  *bool        `json:"favorito"`
}

type NoteFilters struct {
	SubjectID string
	Favorite  *bool
	Search    string
}

type NoteService interface {
	Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in NoteInput) (models.Note, error)
	List(ctx context.Context, db *gorm.DB, studentID uuid.UUID, filters NoteFilters) ([]models.Note, error)
	GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Note, error)
	Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in NoteUpdate) (models.Note, error)
	ToggleFavorite(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Note, error)
	Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error
	Favorites(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.Note, error)
	Recent(ctx context.Context, db *gorm.DB, studentID uuid.UUID, limit int) ([]models.Note, error)
	Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.NoteStats, error)
}

type NoteServiceImpl struct{}

func NewNoteService() *NoteServiceImpl {
	return &NoteServiceImpl{}
}

func (s *NoteServiceImpl) Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in NoteInput) (models.Note, error) {
	if err := verifySubjectOwned(ctx, db, studentID, in.SubjectID); err != nil {
		return models.Note{}, err
	}

	note := models.Note{
		ID:        uuid.Must(uuid.NewV4()),
		StudentID: studentID,
		SubjectID: in.SubjectID,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		Favorite:  in.Favorite,
	}

	if err := db.WithContext(ctx).Create(&note).Error; err != nil {
		return models.Note{}, err
	}
	return s.GetByID(ctx, db, studentID, note.ID)
}

func (s *NoteServiceImpl) List(ctx context.Context, db *gorm.DB, studentID uuid.UUID, filters NoteFilters) ([]models.Note, error) {
	notes := []models.Note{}
	q := subjectJoin(db.WithContext(ctx).Model(&models.Note{}), "notas").
		Where("notas.student_id = ?", studentID)

	if filters.SubjectID != "" {
		q = q.Where("notas.subject_id = ?", filters.SubjectID)
	}
	if filters.Favorite != nil {
		q = q.Where("notas.favorite = ?", *filters.Favorite)
	}
	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		q = q.Where("notas.title ILIKE ? OR notas.content ILIKE ? OR notas.tags ILIKE ?", term, term, term)
	}

	err := q.Order("notas.updated_at DESC").Find(&notes).Error
	return notes, err
}

func (s *NoteServiceImpl) GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Note, error) {
	var note models.Note
	err := subjectJoin(db.WithContext(ctx).Model(&models.Note{}), "notas").
		Where("notas.id = ?", id).
		First(&note).Error
	if err != nil {
		return models.Note{}, translateNotFound(err)
	}
	if err := Authorize(note.StudentID, studentID); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (s *NoteServiceImpl) Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in NoteUpdate) (models.Note, error) {
	note, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return models.Note{}, err
	}
	if err := verifySubjectOwned(ctx, db, studentID, in.SubjectID.Value); err != nil {
		return models.Note{}, err
	}

	changes := map[string]interface{}{}
	if in.SubjectID.Set {
		changes["subject_id"] = in.SubjectID.Value
	}
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Content != nil {
		changes["content"] = *in.Content
	}
	if in.Tags != nil {
		changes["tags"] = *in.Tags
	}
	if in.Favorite != nil {
		changes["favorite"] = *in.Favorite
	}

	if len(changes) > 0 {
		err := db.WithContext(ctx).Model(&models.Note{}).Where("id = ?", note.ID).Updates(changes).Error
		if err != nil {
			return models.Note{}, err
		}
	}

	return s.GetByID(ctx, db, studentID, id)
}

func (s *NoteServiceImpl) ToggleFavorite(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Note, error) {
	note, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return models.Note{}, err
	}

	err = db.WithContext(ctx).Model(&models.Note{}).Where("id = ?", note.ID).
		Update("favorite", gorm.Expr("NOT favorite")).Error
	if err != nil {
		return models.Note{}, err
	}

	return s.GetByID(ctx, db, studentID, id)
}

func (s *NoteServiceImpl) Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error {
	note, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&models.Note{}, "id = ?", note.ID).Error
}

func (s *NoteServiceImpl) Favorites(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.Note, error) {
	fav := true
	return s.List(ctx, db, studentID, NoteFilters{Favorite: &fav})
}

func (s *NoteServiceImpl) Recent(ctx context.Context, db *gorm.DB, studentID uuid.UUID, limit int) ([]models.Note, error) {
	if limit <= 0 {
		limit = 10
	}
	notes := []models.Note{}
	err := subjectJoin(db.WithContext(ctx).Model(&models.Note{}), "notas").
		Where("notas.student_id = ?", studentID).
		Order("notas.updated_at DESC").
		Limit(limit).
		Find(&notes).Error
	return notes, err
}

func (s *NoteServiceImpl) Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.NoteStats, error) {
	var stats models.NoteStats
	err := db.WithContext(ctx).
		Model(&models.Note{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN favorite THEN 1 ELSE 0 END), 0) AS favorites,
			COUNT(DISTINCT subject_id) AS subjects_with_notes,
			COUNT(DISTINCT DATE(created_at)) AS days_with_notes`).
		Where("student_id = ?", studentID).
		Scan(&stats).Error
	return stats, err
}
