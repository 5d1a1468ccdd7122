package persistence

import (
	"context"

	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/pkg/tenant"

	"gorm.io/gorm"
)

type changeLogRepositoryImpl struct {
	db *gorm.DB
}

func NewChangeLogRepository(db *gorm.DB) repository.ChangeLogRepository {
	return &changeLogRepositoryImpl{db: db}
}

func (r *changeLogRepositoryImpl) Create(ctx context.Context, e *entity.ChangeLogEntry) error {
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return err
	}
	e.TenantId = s.TenantID
	return r.db.Create(e).Error
}

func (r *changeLogRepositoryImpl) List(ctx context.Context, f repository.ChangeLogFilter) ([]entity.ChangeLogEntry, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	q := db.Model(&entity.ChangeLogEntry{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []entity.ChangeLogEntry
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *changeLogRepositoryImpl) History(ctx context.Context, entityType string, entityID string) ([]entity.ChangeLogEntry, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []entity.ChangeLogEntry
	err = db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
