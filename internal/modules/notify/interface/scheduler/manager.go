package scheduler

import (
	"context"
	"time"

	"RentLink/internal/modules/notify/application/service"
	"RentLink/pkg/zlog"

	"github.com/robfig/cron/v3"
)

// SchedulerManager 每日摘要的定时入口，表达式来自配置
type SchedulerManager struct {
	cron   *cron.Cron
	digest service.DigestService
	spec   string
}

func NewSchedulerManager(digest service.DigestService, spec string) *SchedulerManager {
	return &SchedulerManager{
		// 使用标准5段Cron表达式（不含秒）
		cron:   cron.New(),
		digest: digest,
		spec:   spec,
	}
}

func (m *SchedulerManager) Start() error {
	_, err := m.cron.AddFunc(m.spec, func() {
		defer func() {
			if r := recover(); r != nil {
				zlog.Error("digest run panic recovered")
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		m.digest.RunOnce(ctx, time.Now())
	})
	if err != nil {
		return err
	}
	m.cron.Start()
	zlog.Info("digest scheduler started: " + m.spec)
	return nil
}

func (m *SchedulerManager) Stop() {
	m.cron.Stop()
}
