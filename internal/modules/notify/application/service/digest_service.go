package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/repository"
	userRepository "RentLink/internal/modules/user/domain/repository"
	"RentLink/pkg/redis"
	"RentLink/pkg/tenant"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

// DigestSender 摘要邮件发送端
type DigestSender interface {
	Send(to string, subject string, body string) error
}

// DigestService 每日摘要：把用户 24 小时内的未读通知合成一封邮件
type DigestService interface {
	// RunOnce 幂等的单次执行，调度器定时触发
	RunOnce(ctx context.Context, now time.Time)
}

type digestServiceImpl struct {
	tenantRepo userRepository.TenantInfoRepository
	userRepo   userRepository.UserInfoRepository
	prefRepo   repository.PreferenceRepository
	notifRepo  repository.NotificationRepository
	sender     DigestSender

	window   time.Duration
	maxItems int
}

func NewDigestService(
	tenantRepo userRepository.TenantInfoRepository,
	userRepo userRepository.UserInfoRepository,
	prefRepo repository.PreferenceRepository,
	notifRepo repository.NotificationRepository,
	sender DigestSender,
	windowHours int,
	maxItems int,
) DigestService {
	if windowHours <= 0 {
		windowHours = 24
	}
	if maxItems <= 0 {
		maxItems = 20
	}
	return &digestServiceImpl{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		prefRepo:   prefRepo,
		notifRepo:  notifRepo,
		sender:     sender,
		window:     time.Duration(windowHours) * time.Hour,
		maxItems:   maxItems,
	}
}

func (s *digestServiceImpl) RunOnce(ctx context.Context, now time.Time) {
	// 多副本部署下用 Redis 锁保证一天只跑一轮
	lockKey := "notify:digest:" + now.Format("2006-01-02")
	if ok, err := redis.SetNX(ctx, lockKey, 1, 23*time.Hour); err == nil && !ok {
		zlog.Info("digest run skipped, already executed today")
		return
	}

	tenants, err := s.tenantRepo.ListActive(ctx)
	if err != nil {
		zlog.Error("digest list tenants failed", zap.Error(err))
		return
	}

	for _, t := range tenants {
		// 每个租户一个独立作用域，系统身份执行
		tctx := tenant.With(ctx, tenant.Scope{TenantID: t.Uuid, UserID: "system"})
		s.runTenant(tctx, t.Uuid, now)
	}
}

func (s *digestServiceImpl) runTenant(ctx context.Context, tenantID string, now time.Time) {
	prefs, err := s.prefRepo.ListDigestEnabled(ctx)
	if err != nil {
		zlog.Warn("digest list opted-in users failed", zap.String("tenant", tenantID), zap.Error(err))
		return
	}

	for _, pref := range prefs {
		// 单用户失败只记日志，不影响其他用户和其他租户
		if err := s.sendForUser(ctx, pref.UserId, now); err != nil {
			zlog.Warn("digest send failed",
				zap.String("tenant", tenantID),
				zap.String("user", pref.UserId),
				zap.Error(err))
		}
	}
}

func (s *digestServiceImpl) sendForUser(ctx context.Context, userID string, now time.Time) error {
	since := now.Add(-s.window)
	items, err := s.notifRepo.ListUnreadSince(ctx, userID, since)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		// 没有未读内容就静默跳过
		return nil
	}

	users, err := s.userRepo.ListActiveByUUIDs(ctx, []string{userID})
	if err != nil {
		return err
	}
	if len(users) == 0 || users[0].Email == "" {
		zlog.Debug("digest recipient has no usable email", zap.String("user", userID))
		return nil
	}

	subject, body := s.compose(items)
	return s.sender.Send(users[0].Email, subject, body)
}

// compose 正文最多列 maxItems 条，主题里报真实总数
func (s *digestServiceImpl) compose(items []entity.Notification) (string, string) {
	total := len(items)
	subject := fmt.Sprintf("Daily digest: %d notifications", total)

	shown := items
	if len(shown) > s.maxItems {
		shown = shown[:s.maxItems]
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("You have %d unread notifications from the last 24 hours.\n\n", total))
	for i, n := range shown {
		b.WriteString(fmt.Sprintf("%d. [%s] %s — %s\n", i+1, n.Category, n.Title, n.Message))
	}
	if total > len(shown) {
		b.WriteString(fmt.Sprintf("\n...and %d more. Open the app to see the rest.\n", total-len(shown)))
	}
	return subject, b.String()
}
