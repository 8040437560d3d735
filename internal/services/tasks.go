package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
	"github.com/Williamtrix2022/uniplan/internal/utils"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, value)
	}
	return t, nil
}

type TaskInput struct {
	SubjectID   *uuid.UUID `json:"id_materia"`
	Title       string     `json:"titulo" binding:"required"`
	Description string     `json:"descripcion"`
	DueDate     string     `json:"fecha_entrega" binding:"required"`
	Priority    string     `json:"prioridad"`
	Status      string     `json:"estado"`
	Reminder    bool       `json:"recordatorio"`
}

type TaskUpdate struct {
	SubjectID   OptionalUUID `json:"id_materia"`
	Title       *string      `json:"titulo"`
	Description *string      `json:"descripcion"`
	DueDate     *string      `json:"fecha_entrega"`
	Priority    *string      `json:"prioridad"`
	Status      *string      `json:"estado"`
	Reminder    *bool        `json:"recordatorio"`
}

// TaskFilters narrows List; zero values mean "no filter".
type TaskFilters struct {
	Status    string
	Priority  string
	SubjectID string
}

type TaskService interface {
	Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in TaskInput) (models.Task, error)
	List(ctx context.Context, db *gorm.DB, studentID uuid.UUID, filters TaskFilters) ([]models.Task, error)
	GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Task, error)
	Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in TaskUpdate) (models.Task, error)
	Complete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Task, error)
	Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error
	Upcoming(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.Task, error)
	Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.TaskStats, error)
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in TaskInput) (models.Task, error) {
	dueDate, err := parseDate(in.DueDate)
	if err != nil {
		return models.Task{}, err
	}
	if err := verifySubjectOwned(ctx, db, studentID, in.SubjectID); err != nil {
		return models.Task{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !utils.IsValidPriority(priority) {
		return models.Task{}, fmt.Errorf("%w: invalid priority %q", ErrValidation, priority)
	}
	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if !utils.IsValidTaskStatus(status) {
		return models.Task{}, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		StudentID:   studentID,
		SubjectID:   in.SubjectID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      status,
		Reminder:    in.Reminder,
	}

	if err := db.WithContext(ctx).Create(&task).Error; err != nil {
		return models.Task{}, err
	}
	return s.GetByID(ctx, db, studentID, task.ID)
}

func (s *TaskServiceImpl) List(ctx context.Context, db *gorm.DB, studentID uuid.UUID, filters TaskFilters) ([]models.Task, error) {
	tasks := []models.Task{}
	q := subjectJoin(db.WithContext(ctx).Model(&models.Task{}), "tareas").
		Where("tareas.student_id = ?", studentID)

	if filters.Status != "" {
		q = q.Where("tareas.status = ?", filters.Status)
	}
	if filters.Priority != "" {
		q = q.Where("tareas.priority = ?", filters.Priority)
	}
	if filters.SubjectID != "" {
		q = q.Where("tareas.subject_id = ?", filters.SubjectID)
	}

	err := q.Order("tareas.due_date ASC, tareas.priority DESC").Find(&tasks).Error
	return tasks, err
}

func (s *TaskServiceImpl) GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := subjectJoin(db.WithContext(ctx).Model(&models.Task{}), "tareas").
		Where("tareas.id = ?", id).
		First(&task).Error
	if err != nil {
		return models.Task{}, translateNotFound(err)
	}
	if err := Authorize(task.StudentID, studentID); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in TaskUpdate) (models.Task, error) {
	task, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return models.Task{}, err
	}
	if err := verifySubjectOwned(ctx, db, studentID, in.SubjectID.Value); err != nil {
		return models.Task{}, err
	}

	changes := map[string]interface{}{}
	if in.SubjectID.Set {
		changes["subject_id"] = in.SubjectID.Value
	}
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.DueDate != nil {
		dueDate, err := parseDate(*in.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		changes["due_date"] = dueDate
	}
	if in.Priority != nil {
		if !utils.IsValidPriority(*in.Priority) {
			return models.Task{}, fmt.Errorf("%w: invalid priority %q", ErrValidation, *in.Priority)
		}
		changes["priority"] = *in.Priority
	}
	if in.Status != nil {
		if !utils.IsValidTaskStatus(*in.Status) {
			return models.Task{}, fmt.Errorf("%w: invalid status %q", ErrValidation, *in.Status)
		}
		changes["status"] = *in.Status
	}
	if in.Reminder != nil {
		changes["reminder"] = *in.Reminder
	}

	if len(changes) > 0 {
		err := db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", task.ID).Updates(changes).Error
		if err != nil {
			return models.Task{}, err
		}
	}

	return s.GetByID(ctx, db, studentID, id)
}

// Complete marks the task done. A second call is rejected with
// ErrAlreadyCompleted so the completion timestamp is never overwritten.
func (s *TaskServiceImpl) Complete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.Task, error) {
	task, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return models.Task{}, err
	}
	if task.Completed {
		return models.Task{}, ErrAlreadyCompleted
	}

	now := time.Now()
	err = db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
		"completed":    true,
		"status":       models.StatusCompleted,
		"completed_at": now,
	}).Error
	if err != nil {
		return models.Task{}, err
	}

	return s.GetByID(ctx, db, studentID, id)
}

func (s *TaskServiceImpl) Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error {
	task, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&models.Task{}, "id = ?", task.ID).Error
}

// Upcoming lists incomplete tasks due within the next seven days.
func (s *TaskServiceImpl) Upcoming(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.Task, error) {
	tasks := []models.Task{}
	w := upcomingWindow(time.Now())
	err := subjectJoin(db.WithContext(ctx).Model(&models.Task{}), "tareas").
		Where("tareas.student_id = ? AND tareas.completed = FALSE", studentID).
		Where("tareas.due_date >= ? AND tareas.due_date < ?",
			w.Start.Format(dateLayout), w.End.Format(dateLayout)).
		Order("tareas.due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (s *TaskServiceImpl) Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.TaskStats, error) {
	var stats models.TaskStats
	err := db.WithContext(ctx).
		Model(&models.Task{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN priority = ? THEN 1 ELSE 0 END), 0) AS high_priority`,
			models.StatusPending, models.PriorityHigh).
		Where("student_id = ?", studentID).
		Scan(&stats).Error
	return stats, err
}
