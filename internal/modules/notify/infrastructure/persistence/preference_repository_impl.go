package persistence

import (
	"context"
	"errors"

	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/pkg/tenant"

	"gorm.io/gorm"
)

type preferenceRepositoryImpl struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) repository.PreferenceRepository {
	return &preferenceRepositoryImpl{db: db}
}

func (r *preferenceRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*entity.NotificationPreference, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var pref entity.NotificationPreference
	err = db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 无偏好行不是错误，调用方按全开处理
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepositoryImpl) Upsert(ctx context.Context, pref *entity.NotificationPreference) error {
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return err
	}
	pref.TenantId = s.TenantID
	if pref.Id > 0 {
		return r.db.Save(pref).Error
	}

	var existing entity.NotificationPreference
	err = r.db.Where("tenant_id = ? AND user_id = ?", s.TenantID, pref.UserId).
		First(&existing).Error
	if err == nil {
		pref.Id = existing.Id
		pref.CreatedAt = existing.CreatedAt
		return r.db.Save(pref).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(pref).Error
}

func (r *preferenceRepositoryImpl) ListDigestEnabled(ctx context.Context) ([]entity.NotificationPreference, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []entity.NotificationPreference
	if err := db.Where("daily_digest = ?", true).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
