package service

import (
	"context"

	"RentLink/internal/modules/notify/domain/event"
	"RentLink/pkg/tenant"
	userRepository "RentLink/internal/modules/user/domain/repository"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

// ChangePipeline 实体写路径的显式挂钩
// 持久层在每次 create/update/delete 后同步调用，任何失败都不会中断实体写入
type ChangePipeline interface {
	CaptureBefore(e event.TrackedEntity) map[string]string
	OnEntityChanged(ctx context.Context, before map[string]string, e event.TrackedEntity, isNew bool, isDeleted bool)
}

type changePipelineImpl struct {
	detector     *ChangeDetector
	resolver     *TargetResolver
	notification NotificationService
	dispatcher   *Dispatcher
	changeLog    ChangeLogService
	userRepo     userRepository.UserInfoRepository
}

func NewChangePipeline(
	detector *ChangeDetector,
	resolver *TargetResolver,
	notification NotificationService,
	dispatcher *Dispatcher,
	changeLog ChangeLogService,
	userRepo userRepository.UserInfoRepository,
) ChangePipeline {
	return &changePipelineImpl{
		detector:     detector,
		resolver:     resolver,
		notification: notification,
		dispatcher:   dispatcher,
		changeLog:    changeLog,
		userRepo:     userRepo,
	}
}

func (p *changePipelineImpl) CaptureBefore(e event.TrackedEntity) map[string]string {
	return p.detector.CaptureBefore(e)
}

// OnEntityChanged 同步执行：探测 → 解析接收人 → 落通知行 → 投递 → 记审计
// 落库在返回前完成，保证紧随其后的通知列表查询可见
func (p *changePipelineImpl) OnEntityChanged(ctx context.Context, before map[string]string, e event.TrackedEntity, isNew bool, isDeleted bool) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Error("notify pipeline panic", zap.Any("panic", r))
		}
	}()

	actorID, actorName := p.actor(ctx)
	ev := p.detector.Emit(e, before, isNew, isDeleted, actorID, actorName)
	if ev == nil {
		// 空保存不扇出
		return
	}

	recipients := p.resolver.Resolve(ctx, ev)
	created := p.notification.CreateForEvent(ctx, ev, recipients)
	for i := range created {
		p.dispatcher.Dispatch(ctx, &created[i])
	}

	// 审计记录与扇出无关，接收人为零也要写
	p.changeLog.Record(ctx, ev)
}

func (p *changePipelineImpl) actor(ctx context.Context) (string, string) {
	scope, ok := tenant.From(ctx)
	if !ok || scope.UserID == "" {
		return "", ""
	}
	u, err := p.userRepo.GetByUUID(ctx, scope.UserID)
	if err != nil || u == nil {
		return scope.UserID, ""
	}
	name := u.Nickname
	if name == "" {
		name = u.Username
	}
	return u.Uuid, name
}
