package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ChainPort/internal/api"
	"ChainPort/internal/chain"
	"ChainPort/internal/config"
	"ChainPort/internal/connector"
	"ChainPort/internal/health"
	"ChainPort/internal/notify"
	"ChainPort/internal/observability/alerting"
	"ChainPort/internal/observability/metrics"
	"ChainPort/internal/status"
	"ChainPort/internal/storage/mysql"
	"ChainPort/internal/transport"
	"ChainPort/pkg/logger"
)

// main 是 ChainPort 守护进程的入口。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("chainportd 运行失败: %v", err)
	}
}

func run(ctx context.Context) error {
	configPath := os.Getenv("CHAINPORT_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("configs", "chainport.json")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: cfg.Logging.OutputPaths,
	}); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// 组装状态存储，注册表的实时状态从这里读取。
	var store status.Store
	switch cfg.Status.Driver {
	case "", "memory":
		store = status.NewMemory()
	case "redis":
		redisStore, err := status.NewRedis(ctx, status.RedisConfig{
			Address:  cfg.Status.Redis.Address,
			Password: cfg.Status.Redis.Password,
			DB:       cfg.Status.Redis.DB,
			Key:      cfg.Status.Redis.Key,
		})
		if err != nil {
			return err
		}
		defer redisStore.Close()
		// 快照刷新循环让只读副本也能看到探测器写入的最新状态。
		refresh := time.Duration(cfg.Status.Redis.RefreshSeconds) * time.Second
		go func() {
			if err := redisStore.Run(ctx, refresh, logger.Named("status")); err != nil && !errors.Is(err, context.Canceled) {
				logger.L().Error("status refresh loop exited", "err", err)
			}
		}()
		store = redisStore
	default:
		return fmt.Errorf("未知的状态存储驱动: %s", cfg.Status.Driver)
	}

	descriptors, err := chain.LoadDescriptors(cfg.Registry.DatasetPath)
	if err != nil {
		return err
	}
	registry, err := chain.NewRegistry(descriptors, chain.WithStatusSource(store))
	if err != nil {
		return err
	}

	creds := transport.CredentialsFromEnv()
	env := connector.Environment{
		Mode: connector.Mode(cfg.Mode),
		App: connector.AppMetadata{
			Name:      cfg.App.Name,
			OriginURL: cfg.App.OriginURL,
			IconURLs:  cfg.App.IconURLs,
		},
		WalletConnectProjectID: creds.WalletConnectProjectID,
	}

	var notifier notify.Notifier
	switch cfg.Notifier.Driver {
	case "", "log":
		notifier = notify.NewLog(logger.Named("notify"))
	case "rabbitmq":
		queue, err := notify.NewRabbitMQ(notify.RabbitMQConfig{
			URL:        cfg.Notifier.RabbitMQ.URL,
			Queue:      cfg.Notifier.RabbitMQ.Queue,
			Durable:    cfg.Notifier.RabbitMQ.Durable,
			AutoDelete: cfg.Notifier.RabbitMQ.AutoDelete,
		})
		if err != nil {
			return err
		}
		notifier = queue
	default:
		return fmt.Errorf("未知的通知驱动: %s", cfg.Notifier.Driver)
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.L().Error("close notifier", "err", err)
		}
	}()

	var history mysql.HistoryRepository
	switch cfg.History.Driver {
	case "", "memory":
		history = mysql.NewMemoryHistory()
	case "mysql":
		repo, err := mysql.NewSQLHistory(ctx, mysql.Config{
			DSN:             cfg.History.MySQL.DSN,
			MaxOpenConns:    cfg.History.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.History.MySQL.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.History.MySQL.ConnMaxLifetimeSeconds) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.History.MySQL.ConnMaxIdleTimeSeconds) * time.Second,
		})
		if err != nil {
			return err
		}
		defer repo.Close()
		history = repo
	default:
		return fmt.Errorf("未知的历史存储驱动: %s", cfg.History.Driver)
	}

	var alerts alerting.Dispatcher
	var alertNotifiers []alerting.Notifier
	if cfg.Alerting.DingTalkWebhook != "" {
		alertNotifiers = append(alertNotifiers, &alerting.DingTalkNotifier{
			Sender: &alerting.DingTalkWebhook{URL: cfg.Alerting.DingTalkWebhook},
		})
	}
	if cfg.Alerting.SlackWebhook != "" {
		alertNotifiers = append(alertNotifiers, &alerting.SlackNotifier{
			Sender:    &alerting.SlackWebhook{URL: cfg.Alerting.SlackWebhook},
			ChannelID: cfg.Alerting.SlackChannel,
		})
	}
	if len(alertNotifiers) > 0 {
		alerts = alerting.NewFanout(alertNotifiers...)
	}

	if cfg.Probe.Enabled {
		prober, err := health.NewProber(health.Config{
			Registry:    registry,
			Credentials: creds,
			Store:       store,
			Notifier:    notifier,
			History:     history,
			Alerts:      alerts,
			Interval:    time.Duration(cfg.Probe.IntervalSeconds) * time.Second,
			Timeout:     time.Duration(cfg.Probe.TimeoutSeconds) * time.Second,
			Logger:      logger.Named("health"),
		})
		if err != nil {
			return err
		}
		go func() {
			if err := prober.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.L().Error("prober exited", "err", err)
			}
		}()
	}

	if cfg.Metrics.Address != "" {
		go func() {
			if err := metrics.StartServer(ctx, cfg.Metrics.Address); err != nil && !errors.Is(err, context.Canceled) {
				logger.L().Error("metrics server exited", "err", err)
			}
		}()
	}

	server := api.NewServer(cfg.Server.Address, registry, env, creds, history)
	return server.Start(ctx)
}
