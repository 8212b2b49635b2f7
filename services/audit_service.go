package services

import (
	"context"
	"fmt"

	"leasedesk/constants"
	"leasedesk/errors"
	"leasedesk/models"

	"gorm.io/gorm"
)

type actorKey struct{}

// WithActor gắn user đang thao tác vào context
func WithActor(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom lấy user đang thao tác, nil nếu không có
func ActorFrom(ctx context.Context) *uint {
	if id, ok := ctx.Value(actorKey{}).(uint); ok && id != 0 {
		return &id
	}
	return nil
}

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record ghi một dòng audit. tx có thể là transaction đang mở.
func (s *AuditService) Record(ctx context.Context, tx *gorm.DB, action, entityType string, entityID uint, format string, args ...interface{}) error {
	if tx == nil {
		tx = s.db
	}
	entry := models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     ActorFrom(ctx),
		Summary:    fmt.Sprintf(format, args...),
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return errors.DB("Không thể ghi audit log", err)
	}
	return nil
}

// List trả về audit log mới nhất, lọc theo action nếu có
func (s *AuditService) List(ctx context.Context, action string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = constants.DefaultAudit
	}
	if limit > constants.MaxAudit {
		limit = constants.MaxAudit
	}
	logs := []models.AuditLog{}
	tx := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if action != "" {
		tx = tx.Where("action = ?", action)
	}
	if err := tx.Order("created_at desc").Order("id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, errors.DB("Không thể tải audit log", err)
	}
	return logs, nil
}
