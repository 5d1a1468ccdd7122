package persistence

import (
	"context"

	"RentLink/internal/modules/masterfile/domain/entity"
	"RentLink/internal/modules/masterfile/domain/repository"

	"gorm.io/gorm"
)

type tenantRecordRepositoryImpl struct {
	db *gorm.DB
}

func NewTenantRecordRepository(db *gorm.DB) repository.TenantRecordRepository {
	return &tenantRecordRepositoryImpl{db: db}
}

func (r *tenantRecordRepositoryImpl) Create(ctx context.Context, t *entity.Tenant) error {
	tid, err := fillTenant(ctx)
	if err != nil {
		return err
	}
	t.TenantId = tid
	return r.db.Create(t).Error
}

func (r *tenantRecordRepositoryImpl) Update(ctx context.Context, t *entity.Tenant) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Model(&entity.Tenant{}).
		Where("uuid = ?", t.Uuid).
		Updates(map[string]interface{}{
			"full_name":  t.FullName,
			"email":      t.Email,
			"phone":      t.Phone,
			"id_number":  t.IdNumber,
			"updated_at": t.UpdatedAt,
		}).Error
}

func (r *tenantRecordRepositoryImpl) Delete(ctx context.Context, uuid string) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Where("uuid = ?", uuid).Delete(&entity.Tenant{}).Error
}

func (r *tenantRecordRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*entity.Tenant, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var t entity.Tenant
	if err := db.Where("uuid = ?", uuid).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantRecordRepositoryImpl) List(ctx context.Context) ([]entity.Tenant, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []entity.Tenant
	if err := db.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type leaseRepositoryImpl struct {
	db *gorm.DB
}

func NewLeaseRepository(db *gorm.DB) repository.LeaseRepository {
	return &leaseRepositoryImpl{db: db}
}

func (r *leaseRepositoryImpl) Create(ctx context.Context, l *entity.Lease) error {
	tid, err := fillTenant(ctx)
	if err != nil {
		return err
	}
	l.TenantId = tid
	return r.db.Create(l).Error
}

func (r *leaseRepositoryImpl) Update(ctx context.Context, l *entity.Lease) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Model(&entity.Lease{}).
		Where("uuid = ?", l.Uuid).
		Updates(map[string]interface{}{
			"unit_id":     l.UnitId,
			"renter_id":   l.RenterId,
			"start_date":  l.StartDate,
			"end_date":    l.EndDate,
			"rent_amount": l.RentAmount,
			"status":      l.Status,
			"updated_at":  l.UpdatedAt,
		}).Error
}

func (r *leaseRepositoryImpl) Delete(ctx context.Context, uuid string) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Where("uuid = ?", uuid).Delete(&entity.Lease{}).Error
}

func (r *leaseRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*entity.Lease, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var l entity.Lease
	if err := db.Where("uuid = ?", uuid).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leaseRepositoryImpl) ListByUnit(ctx context.Context, unitID string) ([]entity.Lease, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []entity.Lease
	if err := db.Where("unit_id = ?", unitID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
