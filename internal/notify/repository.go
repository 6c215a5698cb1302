package notify

import (
	"context"

	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"gorm.io/gorm"
)

// GormStore implements Store on PostgreSQL
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps the shared database handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *GormStore) ListForUser(ctx context.Context, userID string, includeArchived bool) ([]models.Notification, error) {
	var notifications []models.Notification
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *GormStore) MarkRead(ctx context.Context, userID, id string) error {
	return s.setFlag(ctx, userID, id, "read")
}

func (s *GormStore) Archive(ctx context.Context, userID, id string) error {
	return s.setFlag(ctx, userID, id, "archived")
}

func (s *GormStore) setFlag(ctx context.Context, userID, id, column string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update(column, true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}
