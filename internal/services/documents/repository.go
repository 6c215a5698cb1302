package documents

import (
	"context"
	"errors"

	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on PostgreSQL
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps the shared database handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListForUser(ctx context.Context, userID string) ([]models.DocumentRecord, error) {
	var docs []models.DocumentRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *GormStore) GetSlot(ctx context.Context, userID string, t models.DocumentType) (*models.DocumentRecord, error) {
	var rec models.DocumentRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, t).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveSlot upserts the single (user, type) slot and persists the
// recomputed authorization flag in the same transaction, so the cached
// flag can never drift from the document rows.
func (s *GormStore) SaveSlot(ctx context.Context, rec *models.DocumentRecord, authorized bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"url", "status", "uploaded_at", "reviewed_at", "reviewer_id", "updated_at",
			}),
		}).Create(rec).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.UserAccount{}).
			Where("id = ?", rec.UserID).
			Update("is_authorized", authorized).Error
	})
}
