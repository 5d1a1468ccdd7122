package persistence

import (
	"context"

	"RentLink/internal/modules/user/domain/entity"
	"RentLink/internal/modules/user/domain/repository"
	"RentLink/pkg/tenant"

	"gorm.io/gorm"
)

type userInfoRepositoryImpl struct {
	db *gorm.DB
}

// NewUserInfoRepository 构造函数
func NewUserInfoRepository(db *gorm.DB) repository.UserInfoRepository {
	return &userInfoRepositoryImpl{db: db}
}

// scoped 所有租户内查询统一走这里，没有作用域直接报错
func (r *userInfoRepositoryImpl) scoped(ctx context.Context) (*gorm.DB, error) {
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return nil, err
	}
	return r.db.Where("tenant_id = ?", s.TenantID), nil
}

func (r *userInfoRepositoryImpl) CreateUserInfo(ctx context.Context, user *entity.UserInfo) error {
	s, err := tenant.FromOrError(ctx)
	if err != nil {
		return err
	}
	user.TenantId = s.TenantID
	return r.db.Create(user).Error
}

// 登录入口，此时还没有租户上下文，按用户名全局查
func (r *userInfoRepositoryImpl) GetUserInfoByUsername(username string) (*entity.UserInfo, error) {
	var user entity.UserInfo
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userInfoRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*entity.UserInfo, error) {
	db, err := r.scoped(ctx)
	if err != nil {
		return nil, err
	}
	var user entity.UserInfo
	if err := db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userInfoRepositoryImpl) ListActiveByRoles(ctx context.Context, roles []string) ([]entity.UserInfo, error) {
	if len(roles) == 0 {
		return []entity.UserInfo{}, nil
	}
	db, err := r.scoped(ctx)
	if err != nil {
		return nil, err
	}
	var users []entity.UserInfo
	err = db.Where("role IN ?", roles).
		Where("status = ?", entity.StatusActive).
		Where("notifications_enabled = ?", true).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userInfoRepositoryImpl) ListActiveByUUIDs(ctx context.Context, uuids []string) ([]entity.UserInfo, error) {
	if len(uuids) == 0 {
		return []entity.UserInfo{}, nil
	}
	db, err := r.scoped(ctx)
	if err != nil {
		return nil, err
	}
	var users []entity.UserInfo
	err = db.Where("uuid IN ?", uuids).
		Where("status = ?", entity.StatusActive).
		Where("notifications_enabled = ?", true).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

type tenantInfoRepositoryImpl struct {
	db *gorm.DB
}

func NewTenantInfoRepository(db *gorm.DB) repository.TenantInfoRepository {
	return &tenantInfoRepositoryImpl{db: db}
}

func (r *tenantInfoRepositoryImpl) CreateTenantInfo(t *entity.TenantInfo) error {
	return r.db.Create(t).Error
}

func (r *tenantInfoRepositoryImpl) ListActive(ctx context.Context) ([]entity.TenantInfo, error) {
	var tenants []entity.TenantInfo
	err := r.db.WithContext(ctx).Where("status = ?", entity.StatusActive).Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}
