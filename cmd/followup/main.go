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

	handler "github.com/propflow/followup-notifier/internal/api/handlers/followup"
	"github.com/propflow/followup-notifier/internal/api/router"
	"github.com/propflow/followup-notifier/internal/api/server"
	"github.com/propflow/followup-notifier/internal/config"
	"github.com/propflow/followup-notifier/internal/connector"
	"github.com/propflow/followup-notifier/internal/dispatcher"
	remindermsg "github.com/propflow/followup-notifier/internal/rabbitmq/handlers/reminder"
	"github.com/propflow/followup-notifier/internal/rabbitmq/queue"
	followuprepo "github.com/propflow/followup-notifier/internal/repository/followup"
	followupsvc "github.com/propflow/followup-notifier/internal/service/followup"
	"github.com/propflow/followup-notifier/internal/worker"
	"github.com/propflow/followup-notifier/pkg/email"
	"github.com/propflow/followup-notifier/pkg/telegram"
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

	q, err := queue.NewReminderQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create reminder queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	repo := followuprepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)

	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	channel := buildChannel(cfg)
	connectors := connector.NewRegistry(cfg.Connectors)

	service := followupsvc.NewService(connectors, repo, rdb, cfg.Connectors.RequestTimeout)
	disp := dispatcher.New(repo, channel, q, cfg.Retry)
	messageHandler := remindermsg.NewHandler(channel, repo)

	backlog := worker.NewBacklog(q, messageHandler, service)
	sweeper := worker.NewSweeper(disp, cfg.Sweep.Interval)

	go backlog.Run(ctx, cfg.Retry, cfg.Workers.Count)
	go sweeper.Run(ctx)

	followupHandler := handler.NewHandler(service, disp, val, cfg)

	r := router.New(followupHandler)
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

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
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

// buildChannel picks the notification channel from configuration.
func buildChannel(cfg *config.Config) dispatcher.Channel {
	switch cfg.Channel {
	case "email":
		smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
		}

		return email.NewClient(
			cfg.Email.SMTPHost,
			smtpPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
			cfg.Email.To,
		)
	default:
		return telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChatID)
	}
}
