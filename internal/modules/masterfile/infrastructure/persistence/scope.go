package persistence

import (
	"context"

	"RentLink/pkg/tenant"

	"gorm.io/gorm"
)

// scoped 统一租户隔离入口，缺少作用域直接报错
func scoped(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return nil, err
	}
	return db.Where("tenant_id = ?", s.TenantID), nil
}

// fillTenant 写入行前补齐租户字段
func fillTenant(ctx context.Context) (string, error) {
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return "", err
	}
	return s.TenantID, nil
}
