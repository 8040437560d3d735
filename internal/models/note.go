package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID        uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	StudentID uuid.UUID      `json:"id_estudiante" gorm:"type:uuid;not null;index"`
	SubjectID *uuid.UUID     `json:"id_materia" gorm:"type:uuid;index"`
	Title     string         `json:"titulo" gorm:"not null"`
	Content   string         `json:"contenido" gorm:"type:text;not null"`
	Tags      string         `json:"etiquetas"`
	Favorite  bool           `json:"favorito" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"fecha_creacion"`
	UpdatedAt time.Time      `json:"fecha_actualizacion"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	SubjectName  string `json:"materia_nombre,omitempty" gorm:"->;-:migration"`
	SubjectColor string `json:"materia_color,omitempty" gorm:"->;-:migration"`
}

func (Note) TableName() string {
	return "notas"
}

// NoteStats is the rollup for GET /api/notes/stats.
type NoteStats struct {
	Total             int64 `json:"total_notas"`
	Favorites         int64 `json:"favoritas"`
	SubjectsWithNotes int64 `json:"materias_con_notas"`
	DaysWithNotes     int64 `json:"dias_con_notas"`
}
