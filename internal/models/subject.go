package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	DefaultSubjectCredits = 3
	DefaultSubjectColor   = "#4CAF50"
)

type Subject struct {
	ID         uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	StudentID  uuid.UUID      `json:"id_estudiante" gorm:"type:uuid;not null;index"`
	Name       string         `json:"nombre" gorm:"not null"`
	Code       string         `json:"codigo"`
	Instructor string         `json:"profesor"`
	Term       string         `json:"semestre"`
	Credits    int            `json:"creditos" gorm:"not null;default:3"`
	Schedule   string         `json:"horario"`
	Color      string         `json:"color" gorm:"not null;default:'#4CAF50'"`
	CreatedAt  time.Time      `json:"fecha_creacion"`
	UpdatedAt  time.Time      `json:"fecha_actualizacion"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Subject) TableName() string {
	return "materias"
}

// SubjectStats is the rollup for GET /api/subjects/stats.
type SubjectStats struct {
	Total        int64 `json:"total_materias"`
	TotalCredits int64 `json:"total_creditos"`
	Terms        int64 `json:"semestres"`
}
