package repository

import (
	"context"

	"RentLink/internal/modules/user/domain/entity"
)

// UserInfoRepository 用户目录查询，除登录外全部租户内查询
type UserInfoRepository interface {
	CreateUserInfo(ctx context.Context, user *entity.UserInfo) error
	GetUserInfoByUsername(username string) (*entity.UserInfo, error)
	GetByUUID(ctx context.Context, uuid string) (*entity.UserInfo, error)
	// ListActiveByRoles 指定角色的在用且开启通知的用户
	ListActiveByRoles(ctx context.Context, roles []string) ([]entity.UserInfo, error)
	// ListActiveByUUIDs 按 uuid 批量取在用且开启通知的用户
	ListActiveByUUIDs(ctx context.Context, uuids []string) ([]entity.UserInfo, error)
}

type TenantInfoRepository interface {
	CreateTenantInfo(t *entity.TenantInfo) error
	// ListActive 摘要任务遍历用，跨租户
	ListActive(ctx context.Context) ([]entity.TenantInfo, error)
}
