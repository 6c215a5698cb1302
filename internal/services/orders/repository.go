package orders

import (
	"context"
	"errors"

	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
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

// CreateOrder persists the order and its lines in one transaction; GORM
// inserts the association rows with the parent.
func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (s *GormStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Preload("PaymentProof").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load order", err)
	}
	return &order, nil
}

func (s *GormStore) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Preload("PaymentProof").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	return orders, nil
}

func (s *GormStore) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Preload("PaymentProof").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	return orders, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order not found")
	}
	return nil
}

// SavePaymentProof upserts the single proof slot keyed by order ID
func (s *GormStore) SavePaymentProof(ctx context.Context, proof *models.PaymentProof) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "file_type", "uploaded_at"}),
	}).Create(proof).Error
}

func (s *GormStore) DocumentsForUser(ctx context.Context, userID string) ([]models.DocumentRecord, error) {
	var docs []models.DocumentRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
