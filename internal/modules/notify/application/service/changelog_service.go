package service

import (
	"context"
	"encoding/json"
	"time"

	"RentLink/internal/modules/notify/application/dto/request"
	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/event"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/pkg/util"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

// ChangeLogService 变更审计，纯追加
type ChangeLogService interface {
	// Record 每个事件恰好一行，与接收人数量无关；失败只记日志不上抛
	Record(ctx context.Context, ev *event.ChangeEvent)
	List(ctx context.Context, req request.ListChangeLogRequest) ([]entity.ChangeLogEntry, error)
	EntityHistory(ctx context.Context, entityType string, entityID string) ([]entity.ChangeLogEntry, error)
}

type changeLogServiceImpl struct {
	repo repository.ChangeLogRepository
}

func NewChangeLogService(repo repository.ChangeLogRepository) ChangeLogService {
	return &changeLogServiceImpl{repo: repo}
}

func (s *changeLogServiceImpl) Record(ctx context.Context, ev *event.ChangeEvent) {
	if ev == nil {
		return
	}
	diffs, err := json.Marshal(ev.FieldDiffs)
	if err != nil {
		diffs = []byte("{}")
	}

	entry := entity.ChangeLogEntry{
		Uuid:       util.GenerateUUID(),
		EntityType: string(ev.EntityType),
		EntityId:   ev.EntityID,
		EntityName: ev.DisplayName,
		ChangeKind: string(ev.Kind),
		FieldDiffs: string(diffs),
		ActorName:  ev.ActorName,
		CreatedAt:  time.Now(),
	}
	if ev.ActorID != "" {
		actorID := ev.ActorID
		entry.ActorId = &actorID
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		// 审计是尽力而为的可观测性，不是事务账本
		zlog.Warn("change log write failed",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityId),
			zap.Error(err))
	}
}

func (s *changeLogServiceImpl) List(ctx context.Context, req request.ListChangeLogRequest) ([]entity.ChangeLogEntry, error) {
	if req.Limit <= 0 || req.Limit > 200 {
		req.Limit = 50
	}
	list, err := s.repo.List(ctx, repository.ChangeLogFilter{
		EntityType: req.EntityType,
		EntityID:   req.EntityId,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return list, nil
}

func (s *changeLogServiceImpl) EntityHistory(ctx context.Context, entityType string, entityID string) ([]entity.ChangeLogEntry, error) {
	if entityType == "" || entityID == "" {
		return nil, xerr.ErrParam
	}
	list, err := s.repo.History(ctx, entityType, entityID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return list, nil
}
