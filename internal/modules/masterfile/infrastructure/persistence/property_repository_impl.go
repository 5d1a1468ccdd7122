package persistence

import (
	"context"
	"time"

	"RentLink/internal/modules/masterfile/domain/entity"
	"RentLink/internal/modules/masterfile/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type landlordRepositoryImpl struct {
	db *gorm.DB
}

func NewLandlordRepository(db *gorm.DB) repository.LandlordRepository {
	return &landlordRepositoryImpl{db: db}
}

func (r *landlordRepositoryImpl) Create(ctx context.Context, l *entity.Landlord) error {
	tid, err := fillTenant(ctx)
	if err != nil {
		return err
	}
	l.TenantId = tid
	return r.db.Create(l).Error
}

func (r *landlordRepositoryImpl) Update(ctx context.Context, l *entity.Landlord) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Model(&entity.Landlord{}).
		Where("uuid = ?", l.Uuid).
		Updates(map[string]interface{}{
			"name":       l.Name,
			"email":      l.Email,
			"phone":      l.Phone,
			"address":    l.Address,
			"notes":      l.Notes,
			"updated_at": l.UpdatedAt,
		}).Error
}

func (r *landlordRepositoryImpl) Delete(ctx context.Context, uuid string) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Where("uuid = ?", uuid).Delete(&entity.Landlord{}).Error
}

func (r *landlordRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*entity.Landlord, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var l entity.Landlord
	if err := db.Where("uuid = ?", uuid).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *landlordRepositoryImpl) List(ctx context.Context) ([]entity.Landlord, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []entity.Landlord
	if err := db.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type propertyRepositoryImpl struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) repository.PropertyRepository {
	return &propertyRepositoryImpl{db: db}
}

func (r *propertyRepositoryImpl) Create(ctx context.Context, p *entity.Property) error {
	tid, err := fillTenant(ctx)
	if err != nil {
		return err
	}
	p.TenantId = tid
	return r.db.Create(p).Error
}

func (r *propertyRepositoryImpl) Update(ctx context.Context, p *entity.Property) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Model(&entity.Property{}).
		Where("uuid = ?", p.Uuid).
		Updates(map[string]interface{}{
			"landlord_id": p.LandlordId,
			"name":        p.Name,
			"address":     p.Address,
			"city":        p.City,
			"kind":        p.Kind,
			"updated_at":  p.UpdatedAt,
		}).Error
}

func (r *propertyRepositoryImpl) Delete(ctx context.Context, uuid string) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Where("uuid = ?", uuid).Delete(&entity.Property{}).Error
}

func (r *propertyRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*entity.Property, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var p entity.Property
	if err := db.Where("uuid = ?", uuid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepositoryImpl) List(ctx context.Context) ([]entity.Property, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []entity.Property
	if err := db.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *propertyRepositoryImpl) ListManagerUserIDs(ctx context.Context, propertyID string) ([]string, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var ids []string
	err = db.Model(&entity.PropertyManager{}).
		Where("property_id = ?", propertyID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *propertyRepositoryImpl) AssignManager(ctx context.Context, propertyID string, userID string) error {
	tid, err := fillTenant(ctx)
	if err != nil {
		return err
	}
	pm := entity.PropertyManager{
		TenantId:   tid,
		PropertyId: propertyID,
		UserId:     userID,
		CreatedAt:  time.Now(),
	}
	// 重复指派幂等
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pm).Error
}

func (r *propertyRepositoryImpl) UnassignManager(ctx context.Context, propertyID string, userID string) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Where("property_id = ? AND user_id = ?", propertyID, userID).
		Delete(&entity.PropertyManager{}).Error
}

type unitRepositoryImpl struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) repository.UnitRepository {
	return &unitRepositoryImpl{db: db}
}

func (r *unitRepositoryImpl) Create(ctx context.Context, u *entity.Unit) error {
	tid, err := fillTenant(ctx)
	if err != nil {
		return err
	}
	u.TenantId = tid
	return r.db.Create(u).Error
}

func (r *unitRepositoryImpl) Update(ctx context.Context, u *entity.Unit) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Model(&entity.Unit{}).
		Where("uuid = ?", u.Uuid).
		Updates(map[string]interface{}{
			"property_id": u.PropertyId,
			"unit_number": u.UnitNumber,
			"bedrooms":    u.Bedrooms,
			"rent_amount": u.RentAmount,
			"is_occupied": u.IsOccupied,
			"updated_at":  u.UpdatedAt,
		}).Error
}

func (r *unitRepositoryImpl) Delete(ctx context.Context, uuid string) error {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Where("uuid = ?", uuid).Delete(&entity.Unit{}).Error
}

func (r *unitRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*entity.Unit, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var u entity.Unit
	if err := db.Where("uuid = ?", uuid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unitRepositoryImpl) ListByProperty(ctx context.Context, propertyID string) ([]entity.Unit, error) {
	db, err := scoped(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []entity.Unit
	if err := db.Where("property_id = ?", propertyID).Order("unit_number").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
