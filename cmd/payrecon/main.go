package main

import (
	"context"
	"fmt"
	"time"

	"github.com/storewave/payrecon/internal/adapter/auth"
	"github.com/storewave/payrecon/internal/adapter/client/gateway"
	"github.com/storewave/payrecon/internal/adapter/config"
	"github.com/storewave/payrecon/internal/adapter/handler/http"
	"github.com/storewave/payrecon/internal/adapter/logger"
	"github.com/storewave/payrecon/internal/adapter/storage"
	"github.com/storewave/payrecon/internal/adapter/storage/repository"
	"github.com/storewave/payrecon/internal/core/port"
	"github.com/storewave/payrecon/internal/core/present"
	"github.com/storewave/payrecon/internal/core/service"
	"github.com/storewave/payrecon/internal/core/watch"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("order repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	gatewayClient, err := gateway.NewClient(conf.Gateway, log.Named("Gateway"))
	if err != nil {
		log.Error("gateway client creating error", zap.Error(err))
		return
	}

	sequencer := present.NewSequencer(time.Second, time.Second, log.Named("Present"))
	defer sequencer.Close()
	go func() {
		for ev := range sequencer.Events() {
			log.Info("presentation signal",
				zap.String("order", string(ev.Order)),
				zap.String("signal", string(ev.Signal)))
		}
	}()

	timeout := time.Duration(conf.Payment.TimeoutMinutes) * time.Minute
	svc, err := service.NewService(repo, gatewayClient, sequencer, timeout, log.Named("Service"))
	if err != nil {
		log.Error("reconciliation service creating error", zap.Error(err))
		return
	}

	gatewayClient.ScheduleSyncService(ctx, svc, conf.Payment.SyncWorkers)

	pollInterval := time.Duration(conf.Payment.PollIntervalSeconds) * time.Second
	supervisor := watch.NewSupervisor(ctx, svc, pollInterval, log.Named("Watch"))
	defer supervisor.Close()

	// Re-arm watchers and requeue syncs for orders caught open by a restart.
	openOrders, err := repo.ListOpenOrders(ctx)
	if err != nil {
		log.Error("open order recall error", zap.Error(err))
		return
	}
	for _, order := range openOrders {
		supervisor.Watch(order)
	}
	err = gateway.RecallOrders(ctx, repo, gatewayClient)
	if err != nil {
		log.Error("open order recall error", zap.Error(err))
		return
	}

	adminToken, err := tokenService.CreateToken(&port.TokenPayload{Subject: "ops", Admin: true})
	if err != nil {
		log.Error("admin token creating error", zap.Error(err))
		return
	}
	log.Info("admin token issued", zap.String("token", adminToken))

	orderHandler, err := http.NewOrderHandler(svc, supervisor, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	webhookHandler, err := http.NewWebhookHandler(svc, log.Named("Webhook handler"))
	if err != nil {
		log.Error("webhook handler creating error", zap.Error(err))
		return
	}
	adminHandler, err := http.NewAdminHandler(svc, log.Named("Admin handler"))
	if err != nil {
		log.Error("admin handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, orderHandler, webhookHandler, adminHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
