package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	notifyRepository "RentLink/internal/modules/notify/domain/repository"
	"RentLink/internal/modules/notify/infrastructure/mq"
	userRepository "RentLink/internal/modules/user/domain/repository"
	"RentLink/pkg/tenant"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

// mailSender 发送端口，生产实现为 Sender
type mailSender interface {
	Send(to, subject, body string) error
}

// Worker 邮件发送消费组
// 有界重试，超过次数记 failed-final 后照常提交消息，不让毒消息无限重投
type Worker struct {
	consumer mq.Consumer

	repo     notifyRepository.NotificationRepository
	prefRepo notifyRepository.PreferenceRepository
	userRepo userRepository.UserInfoRepository
	sender   mailSender

	maxAttempts int
	jobTimeout  time.Duration
}

func NewWorker(
	consumer mq.Consumer,
	repo notifyRepository.NotificationRepository,
	prefRepo notifyRepository.PreferenceRepository,
	userRepo userRepository.UserInfoRepository,
	sender mailSender,
	maxAttempts int,
	jobTimeout time.Duration,
) *Worker {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}
	return &Worker{
		consumer:    consumer,
		repo:        repo,
		prefRepo:    prefRepo,
		userRepo:    userRepo,
		sender:      sender,
		maxAttempts: maxAttempts,
		jobTimeout:  jobTimeout,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.consumer == nil {
		return errors.New("consumer is nil")
	}
	if w.repo == nil || w.sender == nil {
		return errors.New("email worker not fully wired")
	}
	return w.consumer.Run(ctx, w)
}

func (w *Worker) Close() error {
	if w == nil || w.consumer == nil {
		return nil
	}
	return w.consumer.Close()
}

// Handle 单条消息即一个邮件任务；始终返回 nil 提交位点
func (w *Worker) Handle(ctx context.Context, msg mq.Message) error {
	uuid := strings.TrimSpace(string(msg.Value))
	tenantID := strings.TrimSpace(msg.Headers["tenant_id"])
	if uuid == "" || tenantID == "" {
		zlog.Warn("email worker invalid message", zap.String("topic", msg.Topic))
		return nil
	}

	// 消费端以系统身份重建租户作用域
	sctx := tenant.With(ctx, tenant.Scope{TenantID: tenantID, UserID: "system"})

	n, err := w.repo.GetByUUID(sctx, uuid)
	if err != nil || n == nil {
		// 行可能已被保留清理任务删掉，静默跳过
		zlog.Debug("email worker notification gone", zap.String("uuid", uuid))
		return nil
	}
	if n.EmailSent {
		return nil
	}

	// 入队后偏好可能已变，发送前再确认一次
	pref, err := w.prefRepo.GetByUserID(sctx, n.RecipientId)
	if err == nil && !pref.EmailEnabledFor(n.Category) {
		zlog.Debug("email worker preference now disabled", zap.String("uuid", uuid))
		return nil
	}

	users, err := w.userRepo.ListActiveByUUIDs(sctx, []string{n.RecipientId})
	if err != nil || len(users) == 0 || users[0].Email == "" {
		zlog.Debug("email worker recipient has no usable email", zap.String("recipient", n.RecipientId))
		return nil
	}
	to := users[0].Email

	subject := fmt.Sprintf("[%s] %s", strings.ToUpper(n.Priority), n.Title)
	body := n.Message

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		if err := w.sendWithTimeout(to, subject, body); err != nil {
			zlog.Warn("email send attempt failed",
				zap.String("uuid", uuid),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		if err := w.repo.MarkEmailSent(sctx, uuid, time.Now()); err != nil {
			zlog.Warn("email mark sent failed", zap.String("uuid", uuid), zap.Error(err))
		}
		return nil
	}

	zlog.Warn("email send failed-final",
		zap.String("uuid", uuid),
		zap.String("recipient", n.RecipientId),
		zap.Int("attempts", w.maxAttempts))
	return nil
}

// sendWithTimeout 单次尝试的时间预算，超时算一次失败
func (w *Worker) sendWithTimeout(to, subject, body string) error {
	done := make(chan error, 1)
	go func() {
		done <- w.sender.Send(to, subject, body)
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(w.jobTimeout):
		return errors.New("email send timed out")
	}
}
