package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"RentLink/internal/modules/notify/application/dto/request"
	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/event"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/pkg/redis"
	"RentLink/pkg/tenant"
	"RentLink/pkg/util"
	"RentLink/pkg/xerr"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

// NotificationService 通知存储与查询面
type NotificationService interface {
	// CreateForEvent 对事件做扇出写入，按接收人独立提交，部分失败不影响其它接收人
	CreateForEvent(ctx context.Context, ev *event.ChangeEvent, recipients []Recipient) []entity.Notification
	// Notify 编程式入口，供非实体变更类业务事件使用（逾期账单、租约到期提醒等）
	Notify(ctx context.Context, req request.CreateNotificationRequest) (*entity.Notification, error)
	List(ctx context.Context, f repository.ListFilter) ([]entity.Notification, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, uuid string) error
	MarkAllRead(ctx context.Context) error
	ClearRead(ctx context.Context) (int64, error)
}

type notificationServiceImpl struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationServiceImpl{repo: repo}
}

func (s *notificationServiceImpl) CreateForEvent(ctx context.Context, ev *event.ChangeEvent, recipients []Recipient) []entity.Notification {
	if ev == nil || len(recipients) == 0 {
		return nil
	}

	category, priority, title, message := renderEvent(ev)
	payload, err := json.Marshal(map[string]interface{}{
		"entity_type": ev.EntityType,
		"entity_id":   ev.EntityID,
		"entity_name": ev.DisplayName,
		"change_kind": ev.Kind,
		"field_diffs": ev.FieldDiffs,
	})
	if err != nil {
		payload = []byte("{}")
	}

	created := make([]entity.Notification, 0, len(recipients))
	for _, rcpt := range recipients {
		n := entity.Notification{
			Uuid:        util.GenerateUUID(),
			RecipientId: rcpt.UserID,
			Category:    category,
			Priority:    priority,
			Title:       title,
			Message:     message,
			Payload:     string(payload),
			CreatedAt:   time.Now(),
		}
		isNew, err := s.repo.GetOrCreate(ctx, &n)
		if err != nil {
			// 单接收人失败只记日志，不中断其余扇出
			zlog.Warn("notification fanout write failed",
				zap.String("recipient", rcpt.UserID),
				zap.String("category", category),
				zap.Error(err))
			continue
		}
		if !isNew {
			// 重复目标（如既是会计又是物业管理员）合并为一行
			continue
		}
		s.bumpUnread(ctx, rcpt.UserID)
		created = append(created, n)
	}
	return created
}

func (s *notificationServiceImpl) Notify(ctx context.Context, req request.CreateNotificationRequest) (*entity.Notification, error) {
	if req.RecipientId == "" || req.Title == "" || req.Category == "" {
		return nil, xerr.ErrParam
	}
	validCategory := false
	for _, c := range entity.Categories {
		if c == req.Category {
			validCategory = true
			break
		}
	}
	if !validCategory {
		return nil, xerr.New(xerr.BadRequest, "unknown notification category")
	}
	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}

	n := entity.Notification{
		Uuid:        util.GenerateUUID(),
		RecipientId: req.RecipientId,
		Category:    req.Category,
		Priority:    priority,
		Title:       req.Title,
		Message:     req.Message,
		Payload:     req.Payload,
		CreatedAt:   time.Now(),
	}
	if n.Payload == "" {
		n.Payload = "{}"
	}
	isNew, err := s.repo.GetOrCreate(ctx, &n)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if isNew {
		s.bumpUnread(ctx, req.RecipientId)
	}
	return &n, nil
}

func (s *notificationServiceImpl) List(ctx context.Context, f repository.ListFilter) ([]entity.Notification, error) {
	scope, err := tenant.FromOrError(ctx)
	if err != nil {
		return nil, xerr.ErrNoTenant
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	list, err := s.repo.ListByRecipient(ctx, scope.UserID, f)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return list, nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	scope, err := tenant.FromOrError(ctx)
	if err != nil {
		return 0, xerr.ErrNoTenant
	}

	// 先读缓存，未命中回源并写缓存
	key := unreadKey(scope)
	if v, err := redis.Get(ctx, key); err == nil {
		var cnt int64
		if _, err := fmt.Sscanf(v, "%d", &cnt); err == nil {
			return cnt, nil
		}
	}
	cnt, err := s.repo.CountUnread(ctx, scope.UserID)
	if err != nil {
		zlog.Error(err.Error())
		return 0, xerr.ErrServerError
	}
	_ = redis.Set(ctx, key, cnt, 5*time.Minute)
	return cnt, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, uuid string) error {
	scope, err := tenant.FromOrError(ctx)
	if err != nil {
		return xerr.ErrNoTenant
	}
	if err := s.repo.MarkRead(ctx, scope.UserID, uuid, time.Now()); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	s.invalidateUnread(ctx, scope)
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context) error {
	scope, err := tenant.FromOrError(ctx)
	if err != nil {
		return xerr.ErrNoTenant
	}
	if err := s.repo.MarkAllRead(ctx, scope.UserID, time.Now()); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	s.invalidateUnread(ctx, scope)
	return nil
}

func (s *notificationServiceImpl) ClearRead(ctx context.Context) (int64, error) {
	scope, err := tenant.FromOrError(ctx)
	if err != nil {
		return 0, xerr.ErrNoTenant
	}
	n, err := s.repo.DeleteRead(ctx, scope.UserID)
	if err != nil {
		zlog.Error(err.Error())
		return 0, xerr.ErrServerError
	}
	return n, nil
}

func unreadKey(s tenant.Scope) string {
	return "notify:unread:" + s.TenantID + ":" + s.UserID
}

// bumpUnread 写入新通知后让缓存失效，下次查询回源
func (s *notificationServiceImpl) bumpUnread(ctx context.Context, userID string) {
	scope, ok := tenant.From(ctx)
	if !ok {
		return
	}
	scope.UserID = userID
	_, _ = redis.Del(ctx, unreadKey(scope))
}

func (s *notificationServiceImpl) invalidateUnread(ctx context.Context, scope tenant.Scope) {
	_, _ = redis.Del(ctx, unreadKey(scope))
}
