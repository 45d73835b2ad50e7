package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"

	"wealth-backoffice/internal/health"
	"wealth-backoffice/internal/marketdata"
	"wealth-backoffice/internal/server/config"
	delivery "wealth-backoffice/internal/server/delivery/http"
	_ "wealth-backoffice/internal/server/docs"
	"wealth-backoffice/internal/server/jobs"
	"wealth-backoffice/internal/server/repository"
	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
	"wealth-backoffice/pkg/mailer"
	"wealth-backoffice/pkg/postgres"
	"wealth-backoffice/pkg/redis"
	"wealth-backoffice/pkg/telegram"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the back office server",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting back office server", logger.StringField("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis. The quote cache degrades to in-process only when
	// Redis is unreachable.
	var redisClient *redis.Client
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err = redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Warn("Redis unavailable, quote cache is in-process only", logger.ErrorField(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Initialize mailer and Telegram notifier
	mailClient := mailer.NewClient(cfg.SMTP)

	notifier := telegram.NewNoopClient()
	if cfg.Telegram.BotToken != "" {
		tgClient, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Warn("Failed to initialize Telegram notifier", logger.ErrorField(err))
		} else {
			notifier = tgClient
		}
	}

	// Initialize market data providers
	quoteSvc := marketdata.NewService(
		marketdata.Config{
			CacheTTL:       cfg.MarketData.CacheTTL,
			RequestTimeout: cfg.MarketData.RequestTimeout,
		},
		marketdata.NewAlphaVantageProvider(cfg.MarketData.AlphaVantage),
		marketdata.NewYahooProvider(cfg.MarketData.Yahoo),
		redisClient,
		appLogger,
	)

	// Initialize repositories
	householdRepo := repository.NewHouseholdRepository(db.DB)
	accountRepo := repository.NewAccountRepository(db.DB)
	positionRepo := repository.NewPositionRepository(db.DB)
	allocationRepo := repository.NewAllocationRepository(db.DB)
	planRepo := repository.NewPlanRepository(db.DB)
	dividendRepo := repository.NewDividendRepository(db.DB)

	var insightsRepo repository.InsightsRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		insightsRepo, err = repository.NewGeminiInsightsRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize insights repository", logger.ErrorField(err))
		}
	}

	// Initialize services
	householdSvc := service.NewHouseholdService(householdRepo, appLogger)
	accountSvc := service.NewAccountService(accountRepo, householdRepo, appLogger)
	positionSvc := service.NewPositionService(positionRepo, accountRepo, appLogger)
	allocationSvc := service.NewAllocationService(allocationRepo, accountRepo, appLogger)
	planSvc := service.NewPlanService(planRepo, accountRepo, appLogger)
	dividendSvc := service.NewDividendService(dividendRepo, accountRepo, appLogger)
	comparisonSvc := service.NewComparisonService(
		positionRepo, allocationRepo, accountRepo, insightsRepo,
		quoteSvc, cfg.Comparison.TolerancePercent, appLogger,
	)
	priceRefreshSvc := service.NewPriceRefreshService(positionRepo, quoteSvc, appLogger)

	// Start the health monitor
	monitor := health.NewMonitor(
		health.Config{
			CheckInterval:        cfg.Health.CheckInterval,
			MaxConsecutiveErrors: cfg.Health.MaxConsecutiveErrors,
			AlertCooldown:        cfg.Health.AlertCooldown,
			DBReconnectAttempts:  cfg.Health.DBReconnectAttempts,
			DBReconnectDelay:     cfg.Health.DBReconnectDelay,
			AlertRecipients:      cfg.Health.AlertRecipients,
		},
		health.Probes{
			Database:   health.DatabaseProbe(db.DB),
			MarketData: health.MarketDataProbe(quoteSvc, cfg.Health.CanarySymbol, cfg.Health.MarketDataTimeout),
			Email:      health.EmailConfigProbe(mailClient),
			Auth:       health.AuthConfigProbe(cfg.Auth.SessionSecret),
		},
		mailClient,
		notifier,
		appLogger,
	)
	monitor.Start(ctx)
	defer monitor.Stop()

	// Start background jobs
	scheduler := jobs.NewScheduler(cfg.Jobs, priceRefreshSvc, planSvc, appLogger)
	if err := scheduler.Start(); err != nil {
		appLogger.Fatal("Failed to start job scheduler", logger.ErrorField(err))
	}
	defer scheduler.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")
	householdsGroup := apiV1.Group("/households")
	accountsGroup := apiV1.Group("/accounts")
	positionsGroup := apiV1.Group("/positions")
	allocationsGroup := apiV1.Group("/allocations")
	plansGroup := apiV1.Group("/plans")
	dividendsGroup := apiV1.Group("/dividends")
	healthGroup := apiV1.Group("/health")

	delivery.NewHouseholdHandler(householdSvc, appLogger).RegisterRoutes(householdsGroup)
	delivery.NewAccountHandler(accountSvc, appLogger).RegisterRoutes(accountsGroup)
	delivery.NewPositionHandler(positionSvc, appLogger).RegisterRoutes(accountsGroup, positionsGroup)
	delivery.NewAllocationHandler(allocationSvc, appLogger).RegisterRoutes(accountsGroup, allocationsGroup)
	delivery.NewPlanHandler(planSvc, appLogger).RegisterRoutes(accountsGroup, plansGroup)
	delivery.NewDividendHandler(dividendSvc, appLogger).RegisterRoutes(accountsGroup, dividendsGroup)
	delivery.NewComparisonHandler(comparisonSvc, appLogger).RegisterRoutes(accountsGroup)
	delivery.NewHealthHandler(monitor, appLogger).RegisterRoutes(healthGroup)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Wealth Back Office API
// @version 1.0
// @description Portfolio back office: households, accounts, holdings, target allocations, rebalancing comparison and service health.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "server"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing server CLI: %s\n", err)
		os.Exit(1)
	}
}
