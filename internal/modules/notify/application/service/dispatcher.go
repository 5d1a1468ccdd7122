package service

import (
	"context"
	"time"

	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/repository"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

// PushSubmitter 实时推送的"提交即返回"接口，由有界工作池实现
// 返回 false 表示被丢弃（队列满），调用方不关心结果
type PushSubmitter interface {
	Submit(userID string, payload interface{}) bool
}

// EmailQueue 邮件任务入队，由持久化队列实现（Kafka）
type EmailQueue interface {
	Enqueue(ctx context.Context, n *entity.Notification) error
}

// Dispatcher 单条通知的投递：实时推送 + 按偏好的邮件入队
// 两条路径互不阻塞，也都不阻塞调用方；站内行已由 Store 落库，是唯一可靠渠道
type Dispatcher struct {
	prefRepo repository.PreferenceRepository
	push     PushSubmitter
	email    EmailQueue
}

func NewDispatcher(prefRepo repository.PreferenceRepository, push PushSubmitter, email EmailQueue) *Dispatcher {
	return &Dispatcher{prefRepo: prefRepo, push: push, email: email}
}

func (d *Dispatcher) Dispatch(ctx context.Context, n *entity.Notification) {
	if n == nil {
		return
	}

	pref, err := d.prefRepo.GetByUserID(ctx, n.RecipientId)
	if err != nil {
		// 偏好读不到按全开处理
		zlog.Debug("dispatcher preference lookup failed", zap.String("recipient", n.RecipientId), zap.Error(err))
		pref = nil
	}

	if pref.PushEnabledFor(n.Category) && d.push != nil {
		ok := d.push.Submit(n.RecipientId, map[string]interface{}{
			"type":       "notification",
			"uuid":       n.Uuid,
			"category":   n.Category,
			"priority":   n.Priority,
			"title":      n.Title,
			"message":    n.Message,
			"created_at": n.CreatedAt.Format(time.RFC3339),
		})
		if !ok {
			zlog.Debug("push submit dropped", zap.String("recipient", n.RecipientId), zap.String("uuid", n.Uuid))
		}
	}

	if pref.EmailEnabledFor(n.Category) && d.email != nil {
		if err := d.email.Enqueue(ctx, n); err != nil {
			// 入队失败不向触发方暴露
			zlog.Warn("email enqueue failed", zap.String("uuid", n.Uuid), zap.Error(err))
		}
	}
}
