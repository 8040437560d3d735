package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	PriorityLow    = "baja"
	PriorityMedium = "media"
	PriorityHigh   = "alta"

	StatusPending    = "pendiente"
	StatusInProgress = "en_progreso"
	StatusCompleted  = "completada"
)

type Task struct {
	ID          uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	StudentID   uuid.UUID      `json:"id_estudiante" gorm:"type:uuid;not null;index"`
	SubjectID   *uuid.UUID     `json:"id_materia" gorm:"type:uuid;index"`
	Title       string         `json:"titulo" gorm:"not null"`
	Description string         `json:"descripcion"`
	DueDate     time.Time      `json:"fecha_entrega" gorm:"type:date;not null"`
	Priority    string         `json:"prioridad" gorm:"not null;default:'media'"`
	Status      string         `json:"estado" gorm:"not null;default:'pendiente'"`
	Reminder    bool           `json:"recordatorio" gorm:"not null;default:false"`
	Completed   bool           `json:"completada" gorm:"not null;default:false"`
	CompletedAt *time.Time     `json:"fecha_completada"`
	CreatedAt   time.Time      `json:"fecha_creacion"`
	UpdatedAt   time.Time      `json:"fecha_actualizacion"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Denormalized from materias on reads, never written.
	SubjectName  string `json:"materia_nombre,omitempty" gorm:"->;-:migration"`
	SubjectColor string `json:"materia_color,omitempty" gorm:"->;-:migration"`
}

func (Task) TableName() string {
	return "tareas"
}

// TaskStats is the rollup for GET /api/tasks/stats.
type TaskStats struct {
	Total        int64 `json:"total_tareas"`
	Completed    int64 `json:"completadas"`
	Pending      int64 `json:"pendientes"`
	HighPriority int64 `json:"alta_prioridad"`
}
