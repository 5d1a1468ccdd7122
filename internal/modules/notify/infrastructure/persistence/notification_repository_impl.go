package persistence

import (
	"context"
	"errors"
	"time"

	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/pkg/tenant"

	"gorm.io/gorm"
)

// scoped 统一租户隔离入口
func scoped(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return nil, err
	}
	return db.Where("tenant_id = ?", s.TenantID), nil
}

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// GetOrCreate 按 (recipient, category, title, message) 查重
// 来自既有 get-or-create 语义：同一事件扇出内的重复目标收敛为一行
func (r *notificationRepositoryImpl) GetOrCreate(ctx context.Context, n *entity.Notification) (bool, error) {
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return false, err
	}

	var existing entity.Notification
	err = r.db.Where("tenant_id = ?", s.TenantID).
		Where("recipient_id = ?", n.RecipientId).
		Where("category = ?", n.Category).
		Where("title = ?", n.Title).
		Where("message = ?", n.Message).
		First(&existing).Error
	if err == nil {
		*n = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	n.TenantId = s.TenantID
	if err := r.db.Create(n).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *notificationRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*entity.Notification, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var n entity.Notification
	if err := db.Where("uuid = ?", uuid).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string, f repository.ListFilter) ([]entity.Notification, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	q := db.Where("recipient_id = ?", recipientID)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []entity.Notification
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return 0, err
	}
	var cnt int64
	err = db.Model(&entity.Notification{}).
		Where("recipient_id = ?", recipientID).
		Where("is_read = ?", false).
		Count(&cnt).Error
	return cnt, err
}

func (r *notificationRepositoryImpl) ListUnreadSince(ctx context.Context, recipientID string, since time.Time) ([]entity.Notification, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []entity.Notification
	err = db.Where("recipient_id = ?", recipientID).
		Where("is_read = ?", false).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, recipientID string, uuid string, at time.Time) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	// 只允许未读行转移，重复标记不报错（last write wins）
	return db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND uuid = ? AND is_read = ?", recipientID, uuid, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		}).Error
}

func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, recipientID string, at time.Time) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		}).Error
}

func (r *notificationRepositoryImpl) DeleteRead(ctx context.Context, recipientID string) (int64, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return 0, err
	}
	res := db.Where("recipient_id = ? AND is_read = ?", recipientID, true).
		Delete(&entity.Notification{})
	return res.RowsAffected, res.Error
}

func (r *notificationRepositoryImpl) MarkEmailSent(ctx context.Context, uuid string, at time.Time) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Model(&entity.Notification{}).
		Where("uuid = ? AND email_sent = ?", uuid, false).
		Updates(map[string]interface{}{
			"email_sent":    true,
			"email_sent_at": at,
		}).Error
}
