package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_checkout/pkg/authclient"
	pkgdb "github.com/Skotchmaster/shop_checkout/pkg/db"
	"github.com/Skotchmaster/shop_checkout/pkg/events"
	"github.com/Skotchmaster/shop_checkout/pkg/logging"
	loggingmw "github.com/Skotchmaster/shop_checkout/pkg/middleware/logging"
	"github.com/Skotchmaster/shop_checkout/pkg/signature"

	paymentcfg "github.com/Skotchmaster/shop_checkout/services/payment/internal/config"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/gateway"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/httpserver"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/repo"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/service"
)

func main() {
	if err := godotenv.Load("services/payment/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := paymentcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	publisher := events.New(cfg.KafkaBrokers)

	gw := cfg.Gateway
	svc := &service.PaymentService{
		Repo:     &repo.GormRepo{DB: db},
		Gateway:  gateway.NewHTTPClient(gw.BaseURL, gw.KeyID, gw.KeySecret, gw.Timeout),
		Verifier: signature.NewVerifier(gw.KeySecret, gw.WebhookSecret),
		Events:   publisher,
		KeyID:    gw.KeyID,
		Currency: gw.Currency,
	}
	handler := &httpserver.PaymentHTTP{Svc: svc}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		PaymentHandler: handler,
		JWTSecret:      cfg.JWTAccessSecret,
		AuthClient:     authclient.NewClient(cfg.AuthHTTPURL),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("payment listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if err := publisher.Close(); err != nil {
		logger.Error("event publisher close", "error", err)
	}
	_ = pkgdb.Close(db)

	logger.Info("payment stopped")
}
