package repository

import (
	"context"

	"RentLink/internal/modules/masterfile/domain/entity"
)

type LandlordRepository interface {
	Create(ctx context.Context, l *entity.Landlord) error
	Update(ctx context.Context, l *entity.Landlord) error
	Delete(ctx context.Context, uuid string) error
	GetByUUID(ctx context.Context, uuid string) (*entity.Landlord, error)
	List(ctx context.Context) ([]entity.Landlord, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, p *entity.Property) error
	Update(ctx context.Context, p *entity.Property) error
	Delete(ctx context.Context, uuid string) error
	GetByUUID(ctx context.Context, uuid string) (*entity.Property, error)
	List(ctx context.Context) ([]entity.Property, error)
	// ListManagerUserIDs 指派到该物业的管理员用户 uuid
	ListManagerUserIDs(ctx context.Context, propertyID string) ([]string, error)
	AssignManager(ctx context.Context, propertyID string, userID string) error
	UnassignManager(ctx context.Context, propertyID string, userID string) error
}

type UnitRepository interface {
	Create(ctx context.Context, u *entity.Unit) error
	Update(ctx context.Context, u *entity.Unit) error
	Delete(ctx context.Context, uuid string) error
	GetByUUID(ctx context.Context, uuid string) (*entity.Unit, error)
	ListByProperty(ctx context.Context, propertyID string) ([]entity.Unit, error)
}

type TenantRecordRepository interface {
	Create(ctx context.Context, t *entity.Tenant) error
	Update(ctx context.Context, t *entity.Tenant) error
	Delete(ctx context.Context, uuid string) error
	GetByUUID(ctx context.Context, uuid string) (*entity.Tenant, error)
	List(ctx context.Context) ([]entity.Tenant, error)
}

type LeaseRepository interface {
	Create(ctx context.Context, l *entity.Lease) error
	Update(ctx context.Context, l *entity.Lease) error
	Delete(ctx context.Context, uuid string) error
	GetByUUID(ctx context.Context, uuid string) (*entity.Lease, error)
	ListByUnit(ctx context.Context, unitID string) ([]entity.Lease, error)
}
