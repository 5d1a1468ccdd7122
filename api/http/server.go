package http

import (
	"time"

	"RentLink/internal/config"
	"RentLink/internal/initial"
	jwtMiddleware "RentLink/internal/middleware/jwt"
	masterfileService "RentLink/internal/modules/masterfile/application/service"
	masterfilePersistence "RentLink/internal/modules/masterfile/infrastructure/persistence"
	masterfileHandler "RentLink/internal/modules/masterfile/interface/http"
	notifyService "RentLink/internal/modules/notify/application/service"
	notifyEntity "RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/infrastructure/email"
	"RentLink/internal/modules/notify/infrastructure/mq/kafka"
	notifyPersistence "RentLink/internal/modules/notify/infrastructure/persistence"
	"RentLink/internal/modules/notify/infrastructure/push"
	notifyHandler "RentLink/internal/modules/notify/interface/http"
	"RentLink/internal/modules/notify/interface/scheduler"
	"RentLink/internal/modules/user/application/service"
	"RentLink/internal/modules/user/infrastructure/persistence"
	userHandler "RentLink/internal/modules/user/interface/http"
	"RentLink/pkg/ssl"
	"RentLink/pkg/ws"
	"RentLink/pkg/zlog"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var GE *gin.Engine

// 后台组件，生命周期由 cmd 侧管理
var (
	PushPool        *push.Pool
	EmailWorker     *email.Worker
	DigestScheduler *scheduler.SchedulerManager
)

func init() {
	conf := config.GetConfig()

	// 偏好表的类别开关必须覆盖全部通知类别，缺列宁可启动失败
	if err := notifyEntity.ValidateCategoryFlags(); err != nil {
		zlog.Fatal(err.Error())
	}

	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	GE.Use(cors.New(corsConfig))
	GE.Use(ssl.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port))

	wsHub := ws.NewHub()

	// 仓储
	userRepo := persistence.NewUserInfoRepository(initial.GormDB)
	tenantRepo := persistence.NewTenantInfoRepository(initial.GormDB)
	landlordRepo := masterfilePersistence.NewLandlordRepository(initial.GormDB)
	propertyRepo := masterfilePersistence.NewPropertyRepository(initial.GormDB)
	unitRepo := masterfilePersistence.NewUnitRepository(initial.GormDB)
	tenantRecordRepo := masterfilePersistence.NewTenantRecordRepository(initial.GormDB)
	leaseRepo := masterfilePersistence.NewLeaseRepository(initial.GormDB)
	notifRepo := notifyPersistence.NewNotificationRepository(initial.GormDB)
	prefRepo := notifyPersistence.NewPreferenceRepository(initial.GormDB)
	changeLogRepo := notifyPersistence.NewChangeLogRepository(initial.GormDB)

	// 投递基础设施
	PushPool = push.NewPool(
		wsHub,
		conf.NotifyConfig.PushWorkers,
		conf.NotifyConfig.PushQueueSize,
		time.Duration(conf.NotifyConfig.PushTimeoutSeconds)*time.Second,
	)
	PushPool.Start()

	var emailQueue notifyService.EmailQueue
	pub, err := kafka.NewSaramaPublisher(kafka.PublisherConfig{
		Brokers:  conf.KafkaConfig.Brokers,
		ClientID: conf.KafkaConfig.ClientID,
	})
	if err != nil {
		// 没有 Kafka 时只降级掉邮件通道，站内信和推送照常
		zlog.Warn("kafka publisher unavailable, email channel disabled: " + err.Error())
	}
	emailQueue = email.NewPublisher(pub, conf.KafkaConfig.EmailTopic)

	sender := email.NewSender(
		conf.SmtpConfig.Host,
		conf.SmtpConfig.Port,
		conf.SmtpConfig.Username,
		conf.SmtpConfig.Password,
		conf.SmtpConfig.From,
	)

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:  conf.KafkaConfig.Brokers,
		GroupID:  conf.KafkaConfig.ConsumerGroupID,
		Topics:   []string{conf.KafkaConfig.EmailTopic},
		ClientID: conf.KafkaConfig.ClientID,
	})
	if err != nil {
		zlog.Warn("kafka consumer unavailable, email worker disabled: " + err.Error())
	} else {
		EmailWorker = email.NewWorker(
			consumer,
			notifRepo,
			prefRepo,
			userRepo,
			sender,
			conf.NotifyConfig.EmailMaxAttempts,
			time.Duration(conf.NotifyConfig.EmailJobSeconds)*time.Second,
		)
	}

	// 服务
	userSvc := service.NewUserInfoService(userRepo)
	notifSvc := notifyService.NewNotificationService(notifRepo)
	prefSvc := notifyService.NewPreferenceService(prefRepo)
	changeLogSvc := notifyService.NewChangeLogService(changeLogRepo)
	dispatcher := notifyService.NewDispatcher(prefRepo, PushPool, emailQueue)
	detector := notifyService.NewChangeDetector()
	resolver := notifyService.NewTargetResolver(userRepo, propertyRepo, unitRepo, leaseRepo)
	pipeline := notifyService.NewChangePipeline(detector, resolver, notifSvc, dispatcher, changeLogSvc, userRepo)
	masterfileSvc := masterfileService.NewMasterfileService(
		landlordRepo, propertyRepo, unitRepo, tenantRecordRepo, leaseRepo, pipeline)
	digestSvc := notifyService.NewDigestService(
		tenantRepo, userRepo, prefRepo, notifRepo, sender,
		conf.NotifyConfig.DigestWindowHours,
		conf.NotifyConfig.DigestMaxItems,
	)
	DigestScheduler = scheduler.NewSchedulerManager(digestSvc, conf.NotifyConfig.DigestCron)

	// 处理器
	userH := userHandler.NewUserInfoHandler(userSvc)
	masterfileH := masterfileHandler.NewMasterfileHandler(masterfileSvc)
	notifH := notifyHandler.NewNotificationHandler(notifSvc, dispatcher)
	prefH := notifyHandler.NewPreferenceHandler(prefSvc)
	changeLogH := notifyHandler.NewChangeLogHandler(changeLogSvc)
	wsH := notifyHandler.NewWsHandler(wsHub, userRepo)

	GE.POST("/login", userH.Login)
	GE.GET("/wss", wsH.Connect)

	authed := GE.Group("/")
	authed.Use(jwtMiddleware.Auth())
	authed.GET("/auth/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"uuid":     c.GetString("uuid"),
			"username": c.GetString("username"),
			"tenant":   c.GetString("tenant_id"),
		})
	})

	authed.POST("/landlord/create", masterfileH.CreateLandlord)
	authed.POST("/landlord/update", masterfileH.UpdateLandlord)
	authed.POST("/landlord/delete", masterfileH.DeleteLandlord)
	authed.GET("/landlord/list", masterfileH.ListLandlords)

	authed.POST("/property/create", masterfileH.CreateProperty)
	authed.POST("/property/update", masterfileH.UpdateProperty)
	authed.POST("/property/delete", masterfileH.DeleteProperty)
	authed.GET("/property/list", masterfileH.ListProperties)
	authed.POST("/property/assignManager", masterfileH.AssignManager)
	authed.POST("/property/unassignManager", masterfileH.UnassignManager)

	authed.POST("/unit/create", masterfileH.CreateUnit)
	authed.POST("/unit/update", masterfileH.UpdateUnit)
	authed.POST("/unit/delete", masterfileH.DeleteUnit)
	authed.GET("/unit/list", masterfileH.ListUnits)

	authed.POST("/tenantRecord/create", masterfileH.CreateTenantRecord)
	authed.POST("/tenantRecord/update", masterfileH.UpdateTenantRecord)
	authed.POST("/tenantRecord/delete", masterfileH.DeleteTenantRecord)
	authed.GET("/tenantRecord/list", masterfileH.ListTenantRecords)

	authed.POST("/lease/create", masterfileH.CreateLease)
	authed.POST("/lease/update", masterfileH.UpdateLease)
	authed.POST("/lease/delete", masterfileH.DeleteLease)
	authed.GET("/lease/list", masterfileH.ListLeases)

	authed.POST("/notification/create", notifH.Create)
	authed.GET("/notification/list", notifH.List)
	authed.GET("/notification/unreadCount", notifH.UnreadCount)
	authed.POST("/notification/markRead", notifH.MarkRead)
	authed.POST("/notification/markAllRead", notifH.MarkAllRead)
	authed.POST("/notification/clearRead", notifH.ClearRead)

	authed.GET("/preference/get", prefH.Get)
	authed.POST("/preference/update", prefH.Update)

	authed.GET("/changelog/list", changeLogH.List)
	authed.GET("/changelog/history", changeLogH.History)
}
