package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config 描述 chainportd 在启动阶段需要加载的核心配置。
type Config struct {
	Server   ServerConfig   `json:"server"`
	Metrics  MetricsConfig  `json:"metrics"`
	Mode     string         `json:"mode"`
	App      AppConfig      `json:"app"`
	Registry RegistryConfig `json:"registry"`
	Probe    ProbeConfig    `json:"probe"`
	Status   StatusConfig   `json:"status"`
	Notifier NotifierConfig `json:"notifier"`
	History  HistoryConfig  `json:"history"`
	Alerting AlertingConfig `json:"alerting"`
	Logging  LoggingConfig  `json:"logging"`
}

// ServerConfig 控制 API 服务的监听地址。
type ServerConfig struct {
	Address string `json:"address"`
}

// MetricsConfig 控制指标服务的监听地址，留空则不启动。
type MetricsConfig struct {
	Address string `json:"address"`
}

// AppConfig 描述宿主应用对钱包 SDK 暴露的元数据。
type AppConfig struct {
	Name      string   `json:"name"`
	OriginURL string   `json:"origin_url"`
	IconURLs  []string `json:"icon_urls"`
}

// RegistryConfig 指向可选的链数据集 YAML 覆盖文件。
type RegistryConfig struct {
	DatasetPath string `json:"dataset_path"`
}

// ProbeConfig 控制健康探测的节奏。
type ProbeConfig struct {
	Enabled         bool `json:"enabled"`
	IntervalSeconds int  `json:"interval_seconds"`
	TimeoutSeconds  int  `json:"timeout_seconds"`
}

// StatusConfig 选择链状态存储的驱动。
type StatusConfig struct {
	Driver string      `json:"driver"`
	Redis  RedisConfig `json:"redis"`
}

// RedisConfig 描述 Redis 状态存储的连接信息。RefreshSeconds 控制
// 本地快照从 Redis 全量拉取的周期。
type RedisConfig struct {
	Address        string `json:"address"`
	Password       string `json:"password"`
	DB             int    `json:"db"`
	Key            string `json:"key"`
	RefreshSeconds int    `json:"refresh_seconds"`
}

// NotifierConfig 选择状态跃迁通知的驱动。
type NotifierConfig struct {
	Driver   string         `json:"driver"`
	RabbitMQ RabbitMQConfig `json:"rabbitmq"`
}

// RabbitMQConfig 描述 RabbitMQ 通知器的连接信息。
type RabbitMQConfig struct {
	URL        string `json:"url"`
	Queue      string `json:"queue"`
	Durable    bool   `json:"durable"`
	AutoDelete bool   `json:"auto_delete"`
}

// HistoryConfig 选择探测历史的持久化驱动。
type HistoryConfig struct {
	Driver string      `json:"driver"`
	MySQL  MySQLConfig `json:"mysql"`
}

// MySQLConfig 描述 MySQL 连接池的参数。
type MySQLConfig struct {
	DSN                    string `json:"dsn"`
	MaxOpenConns           int    `json:"max_open_conns"`
	MaxIdleConns           int    `json:"max_idle_conns"`
	ConnMaxLifetimeSeconds int    `json:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int    `json:"conn_max_idle_time_seconds"`
}

// AlertingConfig 配置链路全面中断时的告警渠道，全部留空则不告警。
type AlertingConfig struct {
	DingTalkWebhook string `json:"dingtalk_webhook"`
	SlackWebhook    string `json:"slack_webhook"`
	SlackChannel    string `json:"slack_channel"`
}

// LoggingConfig 控制日志输出行为。
type LoggingConfig struct {
	Level       string   `json:"level"`
	Format      string   `json:"format"`
	OutputPaths []string `json:"output_paths"`
}

// Load 负责解析指定路径的 JSON 配置文件。文件内容先做环境变量展开，
// 因此密钥可以写成 ${ALCHEMY_API_KEY} 的形式而不落盘。
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("配置文件路径为空")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal([]byte(os.ExpandEnv(string(content))), &cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults 在用户未填写部分字段时设置合理的默认值。
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Mode == "" {
		c.Mode = "production"
	}
	if c.App.Name == "" {
		c.App.Name = "ChainPort"
	}
	if c.Probe.IntervalSeconds <= 0 {
		c.Probe.IntervalSeconds = 60
	}
	if c.Probe.TimeoutSeconds <= 0 {
		c.Probe.TimeoutSeconds = 10
	}
	if c.Status.Driver == "" {
		c.Status.Driver = "memory"
	}
	if c.Status.Redis.RefreshSeconds <= 0 {
		c.Status.Redis.RefreshSeconds = 15
	}
	if c.Alerting.SlackWebhook != "" && c.Alerting.SlackChannel == "" {
		c.Alerting.SlackChannel = "#chainport"
	}
	if c.Notifier.Driver == "" {
		c.Notifier.Driver = "log"
	}
	if c.History.Driver == "" {
		c.History.Driver = "memory"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}
