package services

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
)

type PomodoroInput struct {
	SubjectID    *uuid.UUID `json:"id_materia"`
	WorkMinutes  *int       `json:"duracion_trabajo"`
	BreakMinutes *int       `json:"duracion_descanso"`
	Notes        string     `json:"notas"`
}

type PomodoroUpdate struct {
	Cycles       *int    `json:"ciclos_completados"`
	StudyMinutes *int    `json:"tiempo_total_estudio"`
	Notes        *string `json:"notas"`
}

// PomodoroCompletion carries the final counters reported by the client
// when a session ends. Nil fields keep the stored values.
type PomodoroCompletion struct {
	Cycles       *int `json:"ciclos_completados"`
	StudyMinutes *int `json:"tiempo_total_estudio"`
}

type PomodoroFilters struct {
	SubjectID string
	Completed *bool
	DateFrom  string
	DateTo    string
}

type PomodoroService interface {
	Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in PomodoroInput) (models.PomodoroSession, error)
	List(ctx context.Context, db *gorm.DB, studentID uuid.UUID, filters PomodoroFilters) ([]models.PomodoroSession, error)
	GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.PomodoroSession, error)
	Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in PomodoroUpdate) (models.PomodoroSession, error)
	Complete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in PomodoroCompletion) (models.PomodoroSession, error)
	Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error
	Today(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.PomodoroSession, error)
	Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID, period string) (models.PomodoroStats, error)
	BySubject(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.PomodoroSubjectStats, error)
	ByDay(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.PomodoroDayStats, error)
}

type PomodoroServiceImpl struct{}

func NewPomodoroService() *PomodoroServiceImpl {
	return &PomodoroServiceImpl{}
}

func (s *PomodoroServiceImpl) Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in PomodoroInput) (models.PomodoroSession, error) {
	if err := verifySubjectOwned(ctx, db, studentID, in.SubjectID); err != nil {
		return models.PomodoroSession{}, err
	}

	workMinutes := models.DefaultWorkMinutes
	if in.WorkMinutes != nil {
		workMinutes = *in.WorkMinutes
	}
	breakMinutes := models.DefaultBreakMinutes
	if in.BreakMinutes != nil {
		breakMinutes = *in.BreakMinutes
	}

	session := models.PomodoroSession{
		ID:           uuid.Must(uuid.NewV4()),
		StudentID:    studentID,
		SubjectID:    in.SubjectID,
		WorkMinutes:  workMinutes,
		BreakMinutes: breakMinutes,
		StartedAt:    time.Now(),
		Notes:        in.Notes,
	}

	if err := db.WithContext(ctx).Create(&session).Error; err != nil {
		return models.PomodoroSession{}, err
	}
	return s.GetByID(ctx, db, studentID, session.ID)
}

func (s *PomodoroServiceImpl) List(ctx context.Context, db *gorm.DB, studentID uuid.UUID, filters PomodoroFilters) ([]models.PomodoroSession, error) {
	sessions := []models.PomodoroSession{}
	q := subjectJoin(db.WithContext(ctx).Model(&models.PomodoroSession{}), "sesiones_pomodoro").
		Where("sesiones_pomodoro.student_id = ?", studentID)

	if filters.SubjectID != "" {
		q = q.Where("sesiones_pomodoro.subject_id = ?", filters.SubjectID)
	}
	if filters.Completed != nil {
		q = q.Where("sesiones_pomodoro.completed = ?", *filters.Completed)
	}
	if filters.DateFrom != "" && filters.DateTo != "" {
		from, err := parseDate(filters.DateFrom)
		if err != nil {
			return nil, err
		}
		to, err := parseDate(filters.DateTo)
		if err != nil {
			return nil, err
		}
		q = q.Where("sesiones_pomodoro.started_at >= ? AND sesiones_pomodoro.started_at < ?",
			from, to.AddDate(0, 0, 1))
	}

	err := q.Order("sesiones_pomodoro.started_at DESC").Find(&sessions).Error
	return sessions, err
}

func (s *PomodoroServiceImpl) GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.PomodoroSession, error) {
	var session models.PomodoroSession
	err := subjectJoin(db.WithContext(ctx).Model(&models.PomodoroSession{}), "sesiones_pomodoro").
		Where("sesiones_pomodoro.id = ?", id).
		First(&session).Error
	if err != nil {
		return models.PomodoroSession{}, translateNotFound(err)
	}
	if err := Authorize(session.StudentID, studentID); err != nil {
		return models.PomodoroSession{}, err
	}
	return session, nil
}

func (s *PomodoroServiceImpl) Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in PomodoroUpdate) (models.PomodoroSession, error) {
	session, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return models.PomodoroSession{}, err
	}

	changes := map[string]interface{}{}
	if in.Cycles != nil {
		changes["cycles"] = *in.Cycles
	}
	if in.StudyMinutes != nil {
		changes["study_minutes"] = *in.StudyMinutes
	}
	if in.Notes != nil {
		changes["notes"] = *in.Notes
	}

	if len(changes) > 0 {
		err := db.WithContext(ctx).Model(&models.PomodoroSession{}).Where("id = ?", session.ID).Updates(changes).Error
		if err != nil {
			return models.PomodoroSession{}, err
		}
	}

	return s.GetByID(ctx, db, studentID, id)
}

// Complete finalizes a session. Completing twice is a conflict: the end
// timestamp records the first completion and must not move.
func (s *PomodoroServiceImpl) Complete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in PomodoroCompletion) (models.PomodoroSession, error) {
	session, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return models.PomodoroSession{}, err
	}
	if session.Completed {
		return models.PomodoroSession{}, ErrAlreadyCompleted
	}

	cycles := session.Cycles
	if in.Cycles != nil {
		cycles = *in.Cycles
	}
	studyMinutes := session.StudyMinutes
	if in.StudyMinutes != nil {
		studyMinutes = *in.StudyMinutes
	}

	now := time.Now()
	err = db.WithContext(ctx).Model(&models.PomodoroSession{}).Where("id = ?", session.ID).Updates(map[string]interface{}{
		"cycles":        cycles,
		"study_minutes": studyMinutes,
		"ended_at":      now,
		"completed":     true,
	}).Error
	if err != nil {
		return models.PomodoroSession{}, err
	}

	return s.GetByID(ctx, db, studentID, id)
}

// Delete is permanent: sessions have no soft-delete flag.
func (s *PomodoroServiceImpl) Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error {
	session, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&models.PomodoroSession{}, "id = ?", session.ID).Error
}

func (s *PomodoroServiceImpl) Today(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.PomodoroSession, error) {
	sessions := []models.PomodoroSession{}
	w := WindowFor(PeriodToday, time.Now())
	err := subjectJoin(db.WithContext(ctx).Model(&models.PomodoroSession{}), "sesiones_pomodoro").
		Where("sesiones_pomodoro.student_id = ?", studentID).
		Where("sesiones_pomodoro.started_at >= ? AND sesiones_pomodoro.started_at < ?", w.Start, w.End).
		Order("sesiones_pomodoro.started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (s *PomodoroServiceImpl) Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID, period string) (models.PomodoroStats, error) {
	var stats models.PomodoroStats
	w := WindowFor(period, time.Now())

	q := db.WithContext(ctx).
		Model(&models.PomodoroSession{}).
		Select(`COUNT(*) AS sessions,
			COALESCE(SUM(cycles), 0) AS cycles,
			COALESCE(SUM(study_minutes), 0) AS study_minutes,
			COALESCE(AVG(study_minutes), 0) AS average_minutes,
			COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed_sessions`).
		Where("student_id = ? AND started_at >= ?", studentID, w.Start)
	if !w.End.IsZero() {
		q = q.Where("started_at < ?", w.End)
	}

	err := q.Scan(&stats).Error
	return stats, err
}

// BySubject aggregates sessions per subject, heaviest study time first.
// Sessions without a subject reference are excluded, matching the inner
// join in the original report.
func (s *PomodoroServiceImpl) BySubject(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.PomodoroSubjectStats, error) {
	rows := []models.PomodoroSubjectStats{}
	err := db.WithContext(ctx).
		Model(&models.PomodoroSession{}).
		Select(`materias.id AS subject_id,
			materias.name AS subject,
			materias.color AS color,
			COUNT(sesiones_pomodoro.id) AS sessions,
			COALESCE(SUM(sesiones_pomodoro.study_minutes), 0) AS study_minutes,
			COALESCE(SUM(sesiones_pomodoro.cycles), 0) AS cycles`).
		Joins("INNER JOIN materias ON materias.id = sesiones_pomodoro.subject_id AND materias.deleted_at IS NULL").
		Where("sesiones_pomodoro.student_id = ?", studentID).
		Group("materias.id, materias.name, materias.color").
		Order("study_minutes DESC").
		Scan(&rows).Error
	return rows, err
}

// ByDay buckets the trailing seven days by calendar day, most recent first.
func (s *PomodoroServiceImpl) ByDay(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.PomodoroDayStats, error) {
	rows := []models.PomodoroDayStats{}
	w := WindowFor(PeriodWeek, time.Now())
	err := db.WithContext(ctx).
		Model(&models.PomodoroSession{}).
		Select(`DATE(started_at) AS date,
			COUNT(*) AS sessions,
			COALESCE(SUM(study_minutes), 0) AS study_minutes,
			COALESCE(SUM(cycles), 0) AS cycles`).
		Where("student_id = ? AND started_at >= ?", studentID, w.Start).
		Group("DATE(started_at)").
		Order("date DESC").
		Scan(&rows).Error
	return rows, err
}
