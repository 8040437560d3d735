package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// PomodoroSession has no DeletedAt: deleting a session is permanent.
type PomodoroSession struct {
	ID           uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	StudentID    uuid.UUID  `json:"id_estudiante" gorm:"type:uuid;not null;index"`
	SubjectID    *uuid.UUID `json:"id_materia" gorm:"type:uuid;index"`
	WorkMinutes  int        `json:"duracion_trabajo" gorm:"not null;default:25"`
	BreakMinutes int        `json:"duracion_descanso" gorm:"not null;default:5"`
	StartedAt    time.Time  `json:"fecha_inicio" gorm:"not null;index"`
	EndedAt      *time.Time `json:"fecha_fin"`
	Cycles       int        `json:"ciclos_completados" gorm:"not null;default:0"`
	StudyMinutes int        `json:"tiempo_total_estudio" gorm:"not null;default:0"`
	Notes        string     `json:"notas"`
	Completed    bool       `json:"completada" gorm:"not null;default:false"`
	CreatedAt    time.Time  `json:"fecha_creacion"`
	UpdatedAt    time.Time  `json:"fecha_actualizacion"`

	SubjectName  string `json:"materia_nombre,omitempty" gorm:"->;-:migration"`
	SubjectColor string `json:"materia_color,omitempty" gorm:"->;-:migration"`
}

func (PomodoroSession) TableName() string {
	return "sesiones_pomodoro"
}

// PomodoroStats is the windowed rollup for GET /api/pomodoro/stats.
type PomodoroStats struct {
	Sessions          int64   `json:"total_sesiones"`
	Cycles            int64   `json:"total_ciclos"`
	StudyMinutes      int64   `json:"total_minutos"`
	AverageMinutes    float64 `json:"promedio_minutos"`
	CompletedSessions int64   `json:"sesiones_completadas"`
}

// PomodoroSubjectStats is one row of the per-subject breakdown.
type PomodoroSubjectStats struct {
	SubjectID    uuid.UUID `json:"id"`
	Subject      string    `json:"materia"`
	Color        string    `json:"color"`
	Sessions     int64     `json:"total_sesiones"`
	StudyMinutes int64     `json:"total_minutos"`
	Cycles       int64     `json:"total_ciclos"`
}

// PomodoroDayStats is one row of the trailing-7-day breakdown.
type PomodoroDayStats struct {
	Date         time.Time `json:"fecha"`
	Sessions     int64     `json:"sesiones"`
	StudyMinutes int64     `json:"minutos_estudiados"`
	Cycles       int64     `json:"ciclos"`
}
