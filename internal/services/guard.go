package services

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
)

// Authorize is the ownership guard applied before every read-by-id and
// mutation. Existence must be resolved before calling it: a missing or
// soft-deleted resource is ErrNotFound, never ErrForbidden, so probing an
// unknown id does not reveal whether it exists under another owner.
func Authorize(ownerID, callerID uuid.UUID) error {
	if ownerID != callerID {
		return ErrForbidden
	}
	return nil
}

// translateNotFound collapses gorm's record-not-found into the service
// sentinel so handlers never import gorm errors.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// verifySubjectOwned rejects cross-owner subject references on create and
// update. A dangling or foreign subject id is a validation failure, not an
// authorization one: the caller is mutating their own resource.
func verifySubjectOwned(ctx context.Context, db *gorm.DB, studentID uuid.UUID, subjectID *uuid.UUID) error {
	if subjectID == nil {
		return nil
	}
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("id = ? AND student_id = ?", subjectID, studentID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrSubjectNotOwned
	}
	return nil
}

// subjectJoin decorates a list/get query with the denormalized subject
// name and color the original API exposes on every joined resource.
func subjectJoin(db *gorm.DB, table string) *gorm.DB {
	return db.
		Select(table+".*, materias.name AS subject_name, materias.color AS subject_color").
		Joins("LEFT JOIN materias ON materias.id = " + table + ".subject_id AND materias.deleted_at IS NULL")
}
