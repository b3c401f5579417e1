// Package main — точка входа платёжного сервиса.
// Сервис рассчитывает скидки и налоги, ведёт жизненный цикл платежа
// и уведомляет наблюдателей о его событиях.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/payment-system/internal/event"
	"example.com/payment-system/internal/handler"
	"example.com/payment-system/internal/middleware"
	"example.com/payment-system/internal/policy"
	"example.com/payment-system/internal/repository"
	"example.com/payment-system/internal/service"
	"example.com/payment-system/pkg/config"
	"example.com/payment-system/pkg/db"
	"example.com/payment-system/pkg/healthcheck"
	"example.com/payment-system/pkg/jwt"
	"example.com/payment-system/pkg/kafka"
	"example.com/payment-system/pkg/logger"
	"example.com/payment-system/pkg/metrics"
	"example.com/payment-system/pkg/tracing"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Ошибка загрузки конфигурации")
	}

	// Инициализируем логгер
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Pretty: cfg.App.LogPretty,
	})

	logger.Info().
		Str("service", cfg.App.Name).
		Str("env", cfg.App.Env).
		Msg("Запуск платёжного сервиса")

	// === Observability: Metrics + Tracing ===

	// Инициализируем distributed tracing (Jaeger)
	shutdownTracing, err := tracing.InitTracer(tracing.Config{
		ServiceName:    "payment",
		JaegerEndpoint: cfg.Jaeger.OTLPEndpoint(),
		Enabled:        cfg.Jaeger.Enabled,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Не удалось инициализировать tracing")
	}

	// === Инициализация зависимостей ===

	// MySQL через GORM
	gormDB, err := db.ConnectMySQL(cfg.MySQL, cfg.IsDevelopment())
	if err != nil {
		logger.Fatal().Err(err).Msg("Не удалось подключиться к MySQL")
	}
	logger.Info().Str("database", cfg.MySQL.Database).Msg("Подключено к MySQL")

	// Redis клиент
	redisClient := db.ConnectRedis(cfg.Redis)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Ошибка закрытия Redis")
		}
	}()

	// Проверяем подключение к Redis
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("Не удалось подключиться к Redis")
	}
	cancel()
	logger.Info().Str("addr", cfg.Redis.Addr()).Msg("Подключено к Redis")

	// Запускаем HTTP сервер для Prometheus метрик
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		readiness := healthcheck.Composite(
			func(ctx context.Context) error { return healthcheck.CheckMySQL(ctx, gormDB) },
			func(ctx context.Context) error { return healthcheck.CheckRedis(ctx, redisClient) },
		)
		metricsServer = metrics.NewServer(cfg.Metrics.Addr(), "payment",
			metrics.WithReadinessCheck(readiness))
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.Error().Err(err).Msg("Ошибка Metrics Server")
			}
		}()
	}

	// === Наблюдатели событий платежа ===

	settlementRecorder := event.NewRedisSettlementRecorder(redisClient, cfg.Settlement.QueueKey)
	settlementObserver := event.NewSettlementObserver(settlementRecorder, cfg.Settlement.Threshold)

	loggingObserver := event.NewLoggingObserver()
	metricsObserver := event.NewMetricsObserver()

	completedObservers := []event.CompletedObserver{loggingObserver, metricsObserver, settlementObserver}
	refundedObservers := []event.RefundedObserver{loggingObserver, metricsObserver, settlementObserver}

	// Kafka producer (опционально: пустой список брокеров отключает публикацию)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
		if err != nil {
			logger.Fatal().Err(err).Msg("Ошибка создания Kafka producer")
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error().Err(err).Msg("Ошибка закрытия Kafka producer")
			}
		}()

		kafkaObserver := event.NewKafkaObserver(producer)
		completedObservers = append(completedObservers, kafkaObserver)
		refundedObservers = append(refundedObservers, kafkaObserver)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Публикация событий в Kafka включена")
	}

	bus := event.NewBus(completedObservers, refundedObservers)

	// === Сборка сервиса ===

	repo := repository.NewPaymentRepository(gormDB)
	registry := policy.DefaultPolicyRegistry()
	paymentService := service.NewPaymentService(repo, policy.DefaultDiscountPolicy(), registry, bus)

	// === Инициализация middleware ===

	tracingMW := middleware.NewTracingMiddleware()

	var rateLimitMW *middleware.RateLimitMiddleware
	if cfg.RateLimit.Enabled {
		rateLimitMW = middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
			Redis:  redisClient,
			Limit:  cfg.RateLimit.Limit,
			Window: cfg.RateLimit.Window,
		})
		logger.Info().
			Int("limit", cfg.RateLimit.Limit).
			Dur("window", cfg.RateLimit.Window).
			Msg("Rate limiting включён")
	}

	// Auth middleware: без публичного ключа admin API недоступен
	var authMW *middleware.AuthMiddleware
	if cfg.JWT.PublicKeyPath != "" {
		validator, err := jwt.NewValidator(jwt.Config{
			PublicKeyPath: cfg.JWT.PublicKeyPath,
			Issuer:        cfg.JWT.Issuer,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Ошибка загрузки публичного ключа JWT")
		}
		validator.SetBlacklist(jwt.NewBlacklist(redisClient))
		authMW = middleware.NewAuthMiddleware(validator, cfg.JWT.AdminRole)
		logger.Info().Str("issuer", cfg.JWT.Issuer).Msg("JWT аутентификация включена")
	} else {
		logger.Warn().Msg("JWT_PUBLIC_KEY_PATH не задан — удаление платежей без авторизации")
	}

	// === Настройка роутера ===

	readiness := healthcheck.Composite(
		func(ctx context.Context) error { return healthcheck.CheckMySQL(ctx, gormDB) },
		func(ctx context.Context) error { return healthcheck.CheckRedis(ctx, redisClient) },
	)

	router := handler.NewRouter(handler.RouterConfig{
		PaymentService: paymentService,
		AuthMW:         authMW,
		RateLimitMW:    rateLimitMW,
		TracingMW:      tracingMW,
		ReadinessCheck: handler.ReadinessChecker(readiness),
		Debug:          cfg.IsDevelopment(),
	})

	// === HTTP сервер ===

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.HTTP.Addr()).
			Msg("HTTP сервер запущен")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Ошибка HTTP сервера")
		}
	}()

	// === Graceful Shutdown ===

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Получен сигнал завершения, останавливаем сервер...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Ошибка при остановке сервера")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Ошибка остановки Metrics Server")
		}
	}

	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Ошибка остановки Tracing")
		}
	}

	logger.Info().Msg("Платёжный сервис остановлен")
}
