package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	server "RentLink/api/http"
	"RentLink/internal/config"
	"RentLink/internal/modules/notify/infrastructure/mq/kafka"
	"RentLink/pkg/redis"
	"RentLink/pkg/zlog"
)

func main() {
	// 1. 加载配置与日志
	conf := config.GetConfig()
	zlog.Init(conf.LogConfig.LogPath)
	defer zlog.Sync()

	// 2. 邮件主题若不存在则创建
	if len(conf.KafkaConfig.Brokers) > 0 {
		err := kafka.EnsureTopic(
			kafka.TopicAdminConfig{Brokers: conf.KafkaConfig.Brokers, ClientID: conf.KafkaConfig.ClientID},
			conf.KafkaConfig.EmailTopic,
			conf.KafkaConfig.Partitions,
			conf.KafkaConfig.Replication,
		)
		if err != nil {
			zlog.Warn("ensure email topic failed: " + err.Error())
		}
	}

	// 3. 启动 HTTP 服务
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		zlog.Info(fmt.Sprintf("服务器正在启动，监听地址: %s", addr))
		// 目前使用 HTTP 启动。如果需要 HTTPS，请配置证书并使用 GE.RunTLS
		if err := server.GE.Run(addr); err != nil {
			zlog.Fatal("服务器启动失败: " + err.Error())
			return
		}
	}()

	// 4. 启动邮件消费组
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if server.EmailWorker != nil {
		go func() {
			if err := server.EmailWorker.Run(workerCtx); err != nil {
				zlog.Error("email worker exited: " + err.Error())
			}
		}()
	}

	// 5. 启动每日摘要调度
	if err := server.DigestScheduler.Start(); err != nil {
		zlog.Fatal("digest scheduler start failed: " + err.Error())
	}

	// 6. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务器...")
	server.DigestScheduler.Stop()
	workerCancel()
	if server.EmailWorker != nil {
		_ = server.EmailWorker.Close()
	}
	server.PushPool.Stop()
	redis.Close()
	zlog.Info("服务器已关闭")
}
