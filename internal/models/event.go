package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	EventTypeClass   = "clase"
	EventTypeExam    = "examen"
	EventTypeDueDate = "tarea"
	EventTypeGeneric = "evento"
	EventTypeOther   = "otro"

	DefaultEventColor      = "#2196F3"
	DefaultReminderMinutes = 30
	DefaultEventType       = EventTypeGeneric
)

type CalendarEvent struct {
	ID              uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	StudentID       uuid.UUID      `json:"id_estudiante" gorm:"type:uuid;not null;index"`
	SubjectID       *uuid.UUID     `json:"id_materia" gorm:"type:uuid;index"`
	Title           string         `json:"titulo" gorm:"not null"`
	Description     string         `json:"descripcion"`
	Date            time.Time      `json:"fecha" gorm:"type:date;not null;index"`
	StartTime       string         `json:"hora_inicio"`
	EndTime         string         `json:"hora_fin"`
	Type            string         `json:"tipo" gorm:"not null;default:'evento'"`
	Location        string         `json:"ubicacion"`
	Reminder        bool           `json:"recordatorio" gorm:"not null;default:false"`
	ReminderMinutes int            `json:"minutos_antes_recordatorio" gorm:"not null;default:30"`
	AllDay          bool           `json:"todo_el_dia" gorm:"not null;default:false"`
	Color           string         `json:"color" gorm:"not null;default:'#2196F3'"`
	CreatedAt       time.Time      `json:"fecha_creacion"`
	UpdatedAt       time.Time      `json:"fecha_actualizacion"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	SubjectName  string `json:"materia_nombre,omitempty" gorm:"->;-:migration"`
	SubjectColor string `json:"materia_color,omitempty" gorm:"->;-:migration"`
}

func (CalendarEvent) TableName() string {
	return "eventos_calendario"
}

// CalendarStats is the rollup for GET /api/calendar/stats.
type CalendarStats struct {
	Total    int64 `json:"total_eventos"`
	Classes  int64 `json:"clases"`
	Exams    int64 `json:"examenes"`
	DueDates int64 `json:"entregas"`
	Today    int64 `json:"eventos_hoy"`
	ThisWeek int64 `json:"eventos_semana"`
}
