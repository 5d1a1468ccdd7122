package config

import (
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
}

type JwtConfig struct {
	Key         string `toml:"key"`
	ExpireHours int    `toml:"expireHours"`
	Issuer      string `toml:"issuer"`
}

type RedisConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"poolSize"`
	MinIdleConns int    `toml:"minIdleConns"`
}

type KafkaConfig struct {
	Brokers         []string `toml:"brokers"`
	ClientID        string   `toml:"clientID"`
	EmailTopic      string   `toml:"emailTopic"`
	ConsumerGroupID string   `toml:"consumerGroupID"`
	Partitions      int32    `toml:"partitions"`
	Replication     int16    `toml:"replication"`
}

type SmtpConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// NotifyConfig 通知管道参数
type NotifyConfig struct {
	PushWorkers        int    `toml:"pushWorkers"`        // 实时推送工作池大小
	PushQueueSize      int    `toml:"pushQueueSize"`      // 推送队列容量，满了直接丢弃
	PushTimeoutSeconds int    `toml:"pushTimeoutSeconds"` // 单次推送预算
	EmailMaxAttempts   int    `toml:"emailMaxAttempts"`   // 邮件发送最大尝试次数
	EmailJobSeconds    int    `toml:"emailJobSeconds"`    // 单次邮件任务超时
	DigestCron         string `toml:"digestCron"`         // 摘要任务 Cron 表达式（5 段）
	DigestWindowHours  int    `toml:"digestWindowHours"`  // 摘要回溯窗口
	DigestMaxItems     int    `toml:"digestMaxItems"`     // 摘要正文最多列出条数
}

type Config struct {
	MainConfig   `toml:"mainConfig"`
	MysqlConfig  `toml:"mysqlConfig"`
	JwtConfig    `toml:"jwtConfig"`
	KafkaConfig  `toml:"kafkaConfig"`
	LogConfig    `toml:"logConfig"`
	RedisConfig  `toml:"redisConfig"`
	SmtpConfig   `toml:"smtpConfig"`
	NotifyConfig `toml:"notifyConfig"`
}

var config *Config

func LoadConfig() error {
	configPath := os.Getenv("RENTLINK_CONFIG")
	if configPath == "" {
		configPath = "configs/config_local.toml"
	}
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Printf("加载配置文件失败: %v, 尝试使用默认设置", err)
		return err
	}
	return nil
}

func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
		config.applyDefaults()
	}
	return config
}

func (c *Config) applyDefaults() {
	if c.NotifyConfig.PushWorkers <= 0 {
		c.NotifyConfig.PushWorkers = 4
	}
	if c.NotifyConfig.PushQueueSize <= 0 {
		c.NotifyConfig.PushQueueSize = 256
	}
	if c.NotifyConfig.PushTimeoutSeconds <= 0 {
		c.NotifyConfig.PushTimeoutSeconds = 3
	}
	if c.NotifyConfig.EmailMaxAttempts <= 0 {
		c.NotifyConfig.EmailMaxAttempts = 3
	}
	if c.NotifyConfig.EmailJobSeconds <= 0 {
		c.NotifyConfig.EmailJobSeconds = 30
	}
	if c.NotifyConfig.DigestCron == "" {
		c.NotifyConfig.DigestCron = "0 7 * * *"
	}
	if c.NotifyConfig.DigestWindowHours <= 0 {
		c.NotifyConfig.DigestWindowHours = 24
	}
	if c.NotifyConfig.DigestMaxItems <= 0 {
		c.NotifyConfig.DigestMaxItems = 20
	}
}
