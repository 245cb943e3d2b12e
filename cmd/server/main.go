package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitshop/internal/auth"
	"fitshop/internal/config"
	httpapi "fitshop/internal/controllers/http"
	"fitshop/internal/infra/cache"
	"fitshop/internal/infra/gemini"
	mmysql "fitshop/internal/infra/mysql"
	"fitshop/internal/infra/rabbitmq"
	"fitshop/internal/logging"
	"fitshop/internal/metrics"
	mysqlrepo "fitshop/internal/repository/mysql"
	"fitshop/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("config: load")
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.Logger()

	db, err := mmysql.NewMySQL(cfg.MySQL)
	if err != nil {
		log.Fatal().Err(err).Msg("db: connect")
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("auth: token manager")
	}

	var publisher rabbitmq.PublisherInterface = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init publisher")
		}
		defer p.Close()
		publisher = p
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, order events are dropped")
	}

	var generator gemini.Generator
	if cfg.Gemini.APIKey != "" {
		generator = gemini.NewClient(gemini.Options{
			APIKey:          cfg.Gemini.APIKey,
			BaseURL:         cfg.Gemini.BaseURL,
			Model:           cfg.Gemini.Model,
			Timeout:         cfg.Gemini.Timeout,
			BreakerFailures: cfg.Gemini.BreakerFailures,
			BreakerCooldown: cfg.Gemini.BreakerCooldown,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		})
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, /ai-tips serves fallback advice")
	}

	catalog := services.NewCatalogService(mysqlrepo.NewCatalogRepository(db))
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer redisClient.Close()
		catalog.SetCache(cache.NewCatalogCache(redisClient, cfg.Redis.CatalogTTL))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := catalog.Warmup(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to warm up catalog cache")
			}
		}()
	}

	orders := services.NewOrderService(mysqlrepo.NewOrderRepository(db), publisher)
	orders.SetCatalog(catalog)

	handler := httpapi.NewHandler(httpapi.Services{
		Auth:    services.NewAuthService(mysqlrepo.NewUserRepository(db), tokens),
		Catalog: catalog,
		Cart:    services.NewCartService(mysqlrepo.NewCartRepository(db)),
		Orders:  orders,
		Tips:    services.NewTipsService(generator),
		Fitness: services.NewFitnessService(mysqlrepo.NewFitnessRepository(db)),
	}, httpapi.Options{
		SecureCookies:     cfg.IsProduction(),
		TipsRatePerMinute: cfg.Server.TipsRatePerMinute,
		AuthRatePerMinute: cfg.Server.AuthRatePerMinute,
	})

	gin.SetMode(gin.ReleaseMode)
	r, err := httpapi.NewEngine(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("router: trusted proxies")
	}
	r.Use(gin.Recovery(), logging.GinMiddleware(), metrics.GinMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("environment", cfg.Server.Environment).Msg("starting fitshop")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server run")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
