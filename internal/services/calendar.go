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

type EventInput struct {
	SubjectID       *uuid.UUID `json:"id_materia"`
	Title           string     `json:"titulo" binding:"required"`
	Description     string     `json:"descripcion"`
	Date            string     `json:"fecha" binding:"required"`
	StartTime       string     `json:"hora_inicio"`
	EndTime         string     `json:"hora_fin"`
	Type            string     `json:"tipo"`
	Location        string     `json:"ubicacion"`
	Reminder        bool       `json:"recordatorio"`
	ReminderMinutes *int       `json:"minutos_antes_recordatorio"`
	AllDay          bool       `json:"todo_el_dia"`
	Color           string     `json:"color"`
}

type EventUpdate struct {
	SubjectID       OptionalUUID `json:"id_materia"`
	Title           *string      `json:"titulo"`
	Description     *string      `json:"descripcion"`
	Date            *string      `json:"fecha"`
	StartTime       *string      `json:"hora_inicio"`
	EndTime         *string      `json:"hora_fin"`
	Type            *string      `json:"tipo"`
	Location        *string      `json:"ubicacion"`
	Reminder        *bool        `json:"recordatorio"`
	ReminderMinutes *int         `json:"minutos_antes_recordatorio"`
	AllDay          *bool        `json:"todo_el_dia"`
	Color           *string      `json:"color"`
}

type EventFilters struct {
	Type      string
	SubjectID string
	Date      string
	DateFrom  string
	DateTo    string
}

type CalendarService interface {
	Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in EventInput) (models.CalendarEvent, error)
	List(ctx context.Context, db *gorm.DB, studentID uuid.UUID, filters EventFilters) ([]models.CalendarEvent, error)
	GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.CalendarEvent, error)
	Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in EventUpdate) (models.CalendarEvent, error)
	Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error
	Today(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.CalendarEvent, error)
	Week(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.CalendarEvent, error)
	Month(ctx context.Context, db *gorm.DB, studentID uuid.UUID, year, month int) ([]models.CalendarEvent, error)
	Reminders(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.CalendarEvent, error)
	Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.CalendarStats, error)
}

type CalendarServiceImpl struct{}

func NewCalendarService() *CalendarServiceImpl {
	return &CalendarServiceImpl{}
}

func (s *CalendarServiceImpl) Create(ctx context.Context, db *gorm.DB, studentID uuid.UUID, in EventInput) (models.CalendarEvent, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return models.CalendarEvent{}, err
	}
	if err := verifySubjectOwned(ctx, db, studentID, in.SubjectID); err != nil {
		return models.CalendarEvent{}, err
	}

	eventType := in.Type
	if eventType == "" {
		eventType = models.DefaultEventType
	}
	if !utils.IsValidEventType(eventType) {
		return models.CalendarEvent{}, fmt.Errorf("%w: invalid event type %q", ErrValidation, eventType)
	}
	color := in.Color
	if color == "" {
		color = models.DefaultEventColor
	}
	if !utils.IsValidColor(color) {
		return models.CalendarEvent{}, fmt.Errorf("%w: invalid color %q", ErrValidation, color)
	}
	if in.StartTime != "" && !utils.IsValidTime(in.StartTime) {
		return models.CalendarEvent{}, fmt.Errorf("%w: invalid start time %q", ErrValidation, in.StartTime)
	}
	if in.EndTime != "" && !utils.IsValidTime(in.EndTime) {
		return models.CalendarEvent{}, fmt.Errorf("%w: invalid end time %q", ErrValidation, in.EndTime)
	}
	reminderMinutes := models.DefaultReminderMinutes
	if in.ReminderMinutes != nil {
		reminderMinutes = *in.ReminderMinutes
	}

	event := models.CalendarEvent{
		ID:              uuid.Must(uuid.NewV4()),
		StudentID:       studentID,
		SubjectID:       in.SubjectID,
		Title:           in.Title,
		Description:     in.Description,
		Date:            date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Type:            eventType,
		Location:        in.Location,
		Reminder:        in.Reminder,
		ReminderMinutes: reminderMinutes,
		AllDay:          in.AllDay,
		Color:           color,
	}

	if err := db.WithContext(ctx).Create(&event).Error; err != nil {
		return models.CalendarEvent{}, err
	}
	return s.GetByID(ctx, db, studentID, event.ID)
}

func (s *CalendarServiceImpl) List(ctx context.Context, db *gorm.DB, studentID uuid.UUID, filters EventFilters) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	q := subjectJoin(db.WithContext(ctx).Model(&models.CalendarEvent{}), "eventos_calendario").
		Where("eventos_calendario.student_id = ?", studentID)

	if filters.Type != "" {
		q = q.Where("eventos_calendario.type = ?", filters.Type)
	}
	if filters.SubjectID != "" {
		q = q.Where("eventos_calendario.subject_id = ?", filters.SubjectID)
	}
	if filters.Date != "" {
		date, err := parseDate(filters.Date)
		if err != nil {
			return nil, err
		}
		q = q.Where("eventos_calendario.date = ?", date.Format(dateLayout))
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
		q = q.Where("eventos_calendario.date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout))
	}

	err := q.Order("eventos_calendario.date ASC, eventos_calendario.start_time ASC").Find(&events).Error
	return events, err
}

func (s *CalendarServiceImpl) GetByID(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) (models.CalendarEvent, error) {
	var event models.CalendarEvent
	err := subjectJoin(db.WithContext(ctx).Model(&models.CalendarEvent{}), "eventos_calendario").
		Where("eventos_calendario.id = ?", id).
		First(&event).Error
	if err != nil {
		return models.CalendarEvent{}, translateNotFound(err)
	}
	if err := Authorize(event.StudentID, studentID); err != nil {
		return models.CalendarEvent{}, err
	}
	return event, nil
}

func (s *CalendarServiceImpl) Update(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID, in EventUpdate) (models.CalendarEvent, error) {
	event, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return models.CalendarEvent{}, err
	}
	if err := verifySubjectOwned(ctx, db, studentID, in.SubjectID.Value); err != nil {
		return models.CalendarEvent{}, err
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
	if in.Date != nil {
		date, err := parseDate(*in.Date)
		if err != nil {
			return models.CalendarEvent{}, err
		}
		changes["date"] = date
	}
	if in.StartTime != nil {
		changes["start_time"] = *in.StartTime
	}
	if in.EndTime != nil {
		changes["end_time"] = *in.EndTime
	}
	if in.Type != nil {
		if !utils.IsValidEventType(*in.Type) {
			return models.CalendarEvent{}, fmt.Errorf("%w: invalid event type %q", ErrValidation, *in.Type)
		}
		changes["type"] = *in.Type
	}
	if in.Location != nil {
		changes["location"] = *in.Location
	}
	if in.Reminder != nil {
		changes["reminder"] = *in.Reminder
	}
	if in.ReminderMinutes != nil {
		changes["reminder_minutes"] = *in.ReminderMinutes
	}
	if in.AllDay != nil {
		changes["all_day"] = *in.AllDay
	}
	if in.Color != nil {
		changes["color"] = *in.Color
	}

	if len(changes) > 0 {
		err := db.WithContext(ctx).Model(&models.CalendarEvent{}).Where("id = ?", event.ID).Updates(changes).Error
		if err != nil {
			return models.CalendarEvent{}, err
		}
	}

	return s.GetByID(ctx, db, studentID, id)
}

func (s *CalendarServiceImpl) Delete(ctx context.Context, db *gorm.DB, studentID, id uuid.UUID) error {
	event, err := s.GetByID(ctx, db, studentID, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&models.CalendarEvent{}, "id = ?", event.ID).Error
}

func (s *CalendarServiceImpl) Today(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	today := time.Now().Format(dateLayout)
	err := subjectJoin(db.WithContext(ctx).Model(&models.CalendarEvent{}), "eventos_calendario").
		Where("eventos_calendario.student_id = ? AND eventos_calendario.date = ?", studentID, today).
		Order("eventos_calendario.start_time ASC").
		Find(&events).Error
	return events, err
}

func (s *CalendarServiceImpl) Week(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	w := upcomingWindow(time.Now())
	err := subjectJoin(db.WithContext(ctx).Model(&models.CalendarEvent{}), "eventos_calendario").
		Where("eventos_calendario.student_id = ?", studentID).
		Where("eventos_calendario.date >= ? AND eventos_calendario.date < ?",
			w.Start.Format(dateLayout), w.End.Format(dateLayout)).
		Order("eventos_calendario.date ASC, eventos_calendario.start_time ASC").
		Find(&events).Error
	return events, err
}

func (s *CalendarServiceImpl) Month(ctx context.Context, db *gorm.DB, studentID uuid.UUID, year, month int) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	err := subjectJoin(db.WithContext(ctx).Model(&models.CalendarEvent{}), "eventos_calendario").
		Where("eventos_calendario.student_id = ?", studentID).
		Where("eventos_calendario.date >= ? AND eventos_calendario.date < ?",
			start.Format(dateLayout), end.Format(dateLayout)).
		Order("eventos_calendario.date ASC, eventos_calendario.start_time ASC").
		Find(&events).Error
	return events, err
}

// Reminders lists the next ten reminder-enabled events from today onward.
func (s *CalendarServiceImpl) Reminders(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	today := time.Now().Format(dateLayout)
	err := subjectJoin(db.WithContext(ctx).Model(&models.CalendarEvent{}), "eventos_calendario").
		Where("eventos_calendario.student_id = ? AND eventos_calendario.reminder = TRUE", studentID).
		Where("eventos_calendario.date >= ?", today).
		Order("eventos_calendario.date ASC, eventos_calendario.start_time ASC").
		Limit(10).
		Find(&events).Error
	return events, err
}

func (s *CalendarServiceImpl) Stats(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (models.CalendarStats, error) {
	var stats models.CalendarStats
	now := startOfDay(time.Now())
	today := now.Format(dateLayout)
	weekEnd := now.AddDate(0, 0, 8).Format(dateLayout)
	err := db.WithContext(ctx).
		Model(&models.CalendarEvent{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS classes,
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS exams,
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS due_dates,
			COALESCE(SUM(CASE WHEN date = ? THEN 1 ELSE 0 END), 0) AS today,
			COALESCE(SUM(CASE WHEN date >= ? AND date < ? THEN 1 ELSE 0 END), 0) AS this_week`,
			models.EventTypeClass, models.EventTypeExam, models.EventTypeDueDate,
			today, today, weekEnd).
		Where("student_id = ?", studentID).
		Scan(&stats).Error
	return stats, err
}
