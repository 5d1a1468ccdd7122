package repository

import (
	"context"

	"RentLink/internal/modules/notify/domain/entity"
)

type PreferenceRepository interface {
	// GetByUserID 没有偏好行时返回 (nil, nil)，调用方按全渠道开启处理
	GetByUserID(ctx context.Context, userID string) (*entity.NotificationPreference, error)
	Upsert(ctx context.Context, pref *entity.NotificationPreference) error
	// ListDigestEnabled 当前租户内开启每日摘要的偏好行
	ListDigestEnabled(ctx context.Context) ([]entity.NotificationPreference, error)
}
