package repository

import (
	"context"

	"RentLink/internal/modules/notify/domain/entity"
)

// ChangeLogFilter 审计查询条件
type ChangeLogFilter struct {
	EntityType string
	EntityID   string
	Limit      int
	Offset     int
}

type ChangeLogRepository interface {
	Create(ctx context.Context, e *entity.ChangeLogEntry) error
	List(ctx context.Context, f ChangeLogFilter) ([]entity.ChangeLogEntry, error)
	// History 指定实体的全部变更，按时间倒序
	History(ctx context.Context, entityType string, entityID string) ([]entity.ChangeLogEntry, error)
}
