package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID         uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	Name       string         `json:"nombre" gorm:"not null"`
	Email      string         `json:"correo" gorm:"uniqueIndex;not null"`
	Password   string         `json:"-" gorm:"not null"`
	Major      string         `json:"carrera"`
	University string         `json:"universidad"`
	CreatedAt  time.Time      `json:"fecha_registro"`
	UpdatedAt  time.Time      `json:"-"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Student) TableName() string {
	return "estudiantes"
}
