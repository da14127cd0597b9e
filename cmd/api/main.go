package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/skillforge/coursepay/internal/checkout"
	checkoutStore "github.com/skillforge/coursepay/internal/checkout/store"
	"github.com/skillforge/coursepay/internal/config"
	"github.com/skillforge/coursepay/internal/coupon"
	couponStore "github.com/skillforge/coursepay/internal/coupon/store"
	courseStore "github.com/skillforge/coursepay/internal/course/store"
	"github.com/skillforge/coursepay/internal/database"
	"github.com/skillforge/coursepay/internal/enrollment"
	enrollmentStore "github.com/skillforge/coursepay/internal/enrollment/store"
	"github.com/skillforge/coursepay/internal/gateway"
	coursepayHttp "github.com/skillforge/coursepay/internal/http"
	checkoutHandler "github.com/skillforge/coursepay/internal/http/checkout"
	couponHandler "github.com/skillforge/coursepay/internal/http/coupon"
	paymentHandler "github.com/skillforge/coursepay/internal/http/payment"
	refundHandler "github.com/skillforge/coursepay/internal/http/refund"
	webhookHandler "github.com/skillforge/coursepay/internal/http/webhook"
	"github.com/skillforge/coursepay/internal/ledger"
	ledgerStore "github.com/skillforge/coursepay/internal/ledger/store"
	"github.com/skillforge/coursepay/internal/notify"
	"github.com/skillforge/coursepay/internal/refund"
	"github.com/skillforge/coursepay/internal/webhook"
	webhookStore "github.com/skillforge/coursepay/internal/webhook/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.ConnectionString(), "migrations"); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.Kafka.BootstrapServers != "" {
		kafka, err := notify.NewKafkaNotifier(cfg.Kafka.BootstrapServers, cfg.Kafka.EnrollmentTopic)
		if err != nil {
			slog.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()

		notifier = kafka
	}

	gatewayClient := gateway.NewHTTPClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout)

	var (
		ledgerService     = ledger.NewService(ledgerStore.New(db))
		couponService     = coupon.NewService(couponStore.New(db))
		enrollmentService = enrollment.NewService(enrollmentStore.New(db), notifier)
		checkoutService   = checkout.NewService(
			checkout.Config{SuccessURL: cfg.Gateway.SuccessURL, CancelURL: cfg.Gateway.CancelURL},
			checkoutStore.New(db),
			courseStore.New(db),
			enrollmentStore.New(db),
			couponService,
			gatewayClient,
			enrollmentService,
		)
		webhookService = webhook.NewService(
			webhookStore.New(db),
			ledgerService,
			enrollmentService,
			[]byte(cfg.Gateway.WebhookSecret),
		)
		refundService = refund.NewService(ledgerService, gatewayClient)
	)

	var (
		checkoutH = checkoutHandler.NewHandler(checkoutService)
		webhookH  = webhookHandler.NewHandler(webhookService)
		refundH   = refundHandler.NewHandler(refundService)
		paymentH  = paymentHandler.NewHandler(ledgerService)
		couponH   = couponHandler.NewHandler(couponService)
	)

	router := coursepayHttp.New([]byte(cfg.Auth.JWTSecret), checkoutH, webhookH, refundH, paymentH, couponH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
