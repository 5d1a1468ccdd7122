package repository

import (
	"context"
	"time"

	"RentLink/internal/modules/notify/domain/entity"
)

// ListFilter 通知列表过滤条件
type ListFilter struct {
	Category   string // 为空不过滤
	UnreadOnly bool
	Limit      int
	Offset     int
}

type NotificationRepository interface {
	// GetOrCreate 按 (recipient, category, title, message) 查重，不存在才创建
	// 返回 true 表示新建
	GetOrCreate(ctx context.Context, n *entity.Notification) (bool, error)
	GetByUUID(ctx context.Context, uuid string) (*entity.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, f ListFilter) ([]entity.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// ListUnreadSince 按创建时间倒序返回 since 之后的未读通知
	ListUnreadSince(ctx context.Context, recipientID string, since time.Time) ([]entity.Notification, error)
	MarkRead(ctx context.Context, recipientID string, uuid string, at time.Time) error
	MarkAllRead(ctx context.Context, recipientID string, at time.Time) error
	DeleteRead(ctx context.Context, recipientID string) (int64, error)
	MarkEmailSent(ctx context.Context, uuid string, at time.Time) error
}
