package service

import (
	"context"

	masterfileRepository "RentLink/internal/modules/masterfile/domain/repository"
	"RentLink/internal/modules/notify/domain/event"
	userEntity "RentLink/internal/modules/user/domain/entity"
	userRepository "RentLink/internal/modules/user/domain/repository"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

// Recipient 扇出目标
type Recipient struct {
	UserID   string
	Email    string
	Nickname string
}

// TargetResolver 计算事件的接收人集合
// 基础集合：admin/accountant 角色；物业相关实体再并上该物业的管理员；最后去掉操作人
type TargetResolver struct {
	userRepo     userRepository.UserInfoRepository
	propertyRepo masterfileRepository.PropertyRepository
	unitRepo     masterfileRepository.UnitRepository
	leaseRepo    masterfileRepository.LeaseRepository
}

func NewTargetResolver(
	userRepo userRepository.UserInfoRepository,
	propertyRepo masterfileRepository.PropertyRepository,
	unitRepo masterfileRepository.UnitRepository,
	leaseRepo masterfileRepository.LeaseRepository,
) *TargetResolver {
	return &TargetResolver{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		leaseRepo:    leaseRepo,
	}
}

// Resolve 返回去重后的接收人，顺序无意义
func (r *TargetResolver) Resolve(ctx context.Context, ev *event.ChangeEvent) []Recipient {
	if ev == nil {
		return nil
	}

	seen := make(map[string]struct{})
	out := make([]Recipient, 0, 8)

	add := func(users []userEntity.UserInfo) {
		for _, u := range users {
			if u.Uuid == "" {
				continue
			}
			if ev.ActorID != "" && u.Uuid == ev.ActorID {
				// 操作人永远不收到自己触发的事件
				continue
			}
			if _, ok := seen[u.Uuid]; ok {
				continue
			}
			seen[u.Uuid] = struct{}{}
			out = append(out, Recipient{UserID: u.Uuid, Email: u.Email, Nickname: u.Nickname})
		}
	}

	staff, err := r.userRepo.ListActiveByRoles(ctx, []string{userEntity.RoleAdmin, userEntity.RoleAccountant})
	if err != nil {
		zlog.Warn("target resolver list staff failed", zap.Error(err))
	} else {
		add(staff)
	}

	propertyID := r.owningProperty(ctx, ev)
	if propertyID != "" {
		managerIDs, err := r.propertyRepo.ListManagerUserIDs(ctx, propertyID)
		if err != nil {
			zlog.Warn("target resolver list managers failed",
				zap.String("property_id", propertyID), zap.Error(err))
		} else if len(managerIDs) > 0 {
			managers, err := r.userRepo.ListActiveByUUIDs(ctx, managerIDs)
			if err != nil {
				zlog.Warn("target resolver load manager users failed", zap.Error(err))
			} else {
				add(managers)
			}
		}
	}

	return out
}

// owningProperty 图游走找归属物业
// 任何一跳断裂（悬挂引用、关联已删除）都返回空串，降级为基础集合
func (r *TargetResolver) owningProperty(ctx context.Context, ev *event.ChangeEvent) string {
	switch ev.EntityType {
	case event.EntityProperty:
		return ev.EntityID
	case event.EntityUnit:
		u, err := r.unitRepo.GetByUUID(ctx, ev.EntityID)
		if err != nil || u == nil {
			zlog.Debug("target resolver unit walk failed", zap.String("unit_id", ev.EntityID))
			return ""
		}
		return u.PropertyId
	case event.EntityLease:
		l, err := r.leaseRepo.GetByUUID(ctx, ev.EntityID)
		if err != nil || l == nil {
			zlog.Debug("target resolver lease walk failed", zap.String("lease_id", ev.EntityID))
			return ""
		}
		u, err := r.unitRepo.GetByUUID(ctx, l.UnitId)
		if err != nil || u == nil {
			zlog.Debug("target resolver lease unit walk failed", zap.String("unit_id", l.UnitId))
			return ""
		}
		return u.PropertyId
	default:
		// landlord / tenant 不挂在物业下
		return ""
	}
}
