package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/antartica/bookstore/internal/config"
	"github.com/antartica/bookstore/internal/events"
	"github.com/antartica/bookstore/internal/httpserver"
	"github.com/antartica/bookstore/internal/logging"
	"github.com/antartica/bookstore/internal/middleware/loggingmw"
	"github.com/antartica/bookstore/internal/repo"
	"github.com/antartica/bookstore/internal/search"
	"github.com/antartica/bookstore/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer(cfg.KafkaAddress)
		defer producer.Close()
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	var es *elasticsearch.Client
	if cfg.ESURL != "" {
		es, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	} else {
		logger.Warn("ES_URL not set, book search disabled")
	}

	r := &repo.GormRepo{DB: db}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      &service.UserService{Repo: r, JWTSecret: cfg.JWTSecret},
			Producer: producer,
		},
		BookHandler: &httpserver.BookHTTP{
			Svc:      &service.BookService{Repo: r},
			Producer: producer,
			ES:       es,
		},
		CartHandler: &httpserver.CartHTTP{
			Svc: &service.CartService{Repo: r},
		},
		UserHandler: &httpserver.UserHTTP{
			Svc: &service.UserService{Repo: r, JWTSecret: cfg.JWTSecret},
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc:      &service.OrderService{Repo: r},
			Producer: producer,
		},
		JWTSecret: cfg.JWTSecret,
	})

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
