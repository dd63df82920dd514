package main

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/workspace-notifier/internal/api/handlers/notification"
	"github.com/aliskhannn/workspace-notifier/internal/api/router"
	"github.com/aliskhannn/workspace-notifier/internal/api/server"
	"github.com/aliskhannn/workspace-notifier/internal/config"
	notifmsg "github.com/aliskhannn/workspace-notifier/internal/rabbitmq/handlers/notification"
	"github.com/aliskhannn/workspace-notifier/internal/rabbitmq/queue"
	"github.com/aliskhannn/workspace-notifier/internal/registry"
	membershiprepo "github.com/aliskhannn/workspace-notifier/internal/repository/membership"
	unreadrepo "github.com/aliskhannn/workspace-notifier/internal/repository/unread"
	notifsvc "github.com/aliskhannn/workspace-notifier/internal/service/notification"
	"github.com/aliskhannn/workspace-notifier/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewNotificationQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create notification queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDNSs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDNSs = append(slaveDNSs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDNSs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	reg := registry.New()
	sweeper := registry.NewSweeper(reg, cfg.Sweeper.Interval)

	memberships := membershiprepo.NewRepository(db)
	unread := unreadrepo.NewRepository(rdb)

	service := notifsvc.NewService(reg, q, memberships, unread)
	notifHandler := notification.NewHandler(service, val, cfg)
	messageHandler := notifmsg.NewHandler(service)

	consumer := worker.NewConsumer(q, messageHandler)

	go consumer.Run(ctx, cfg.Retry, cfg.Workers.Count)
	go sweeper.Run(ctx)

	r := router.New(notifHandler, cfg.JWT.Secret)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close every live stream explicitly so clients see a clean end of
	// stream instead of waiting out their idle timeout.
	reg.Close()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
