package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/naseer2426/rekog/internal/api"
	"github.com/naseer2426/rekog/internal/config"
	"github.com/naseer2426/rekog/internal/db"
	"github.com/naseer2426/rekog/internal/logging"
	"github.com/naseer2426/rekog/internal/metrics"
	"github.com/naseer2426/rekog/internal/rekog"
	"github.com/naseer2426/rekog/internal/rekogbot"
	"github.com/naseer2426/rekog/internal/settings"
	"github.com/naseer2426/rekog/internal/telegram"
)

func main() {
	err := initEnv()
	if err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(cfg.LogLevel)

	store, err := initSettings(cfg)
	if err != nil {
		logger.Fatalf("failed to initialise settings: %v", err)
	}
	m := metrics.New()
	rewriter, err := initRewriter(cfg, logger, m)
	if err != nil {
		logger.Fatalf("failed to load references: %v", err)
	}

	bot := rekogbot.NewBot(rewriter, store, logger)
	router := initRouter()
	t := &api.TelegramWebhook{
		Bot:         bot,
		TelegramAPI: telegram.NewTelegramAPI(cfg.TelegramBotToken),
		Logger:      logger,
	}
	rewrite := &api.Rewrite{Bot: bot}
	opts := &api.Settings{Store: store}

	router.GET("/", api.HealthCheck)
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.POST("/rewrite", rewrite.Rewrite)
	router.GET("/settings", opts.List)
	router.PUT("/settings/:name", opts.Set)
	if t.TelegramAPI.Enabled() {
		router.POST("/telegram/webhook", t.TelegramWebhook)
	}

	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}

func initEnv() error {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		// Only log if the file is missing; envs may be provided by the environment
		if !os.IsNotExist(err) {
			logrus.Warnf("could not load .env: %v", err)
			return err
		}
	}
	return nil
}

func initSettings(cfg *config.Config) (settings.Store, error) {
	var store settings.Store = settings.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		database, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(database, &settings.PluginOption{}); err != nil {
			return nil, err
		}
		store = settings.NewGormStore(database)
	}
	if err := settings.Register(store, settings.Options); err != nil {
		return nil, err
	}
	return store, nil
}

func initRewriter(cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) (*rekog.Rewriter, error) {
	sink := logging.NewDebugSink(logger)
	decoder := rekog.Decoder{MaxPixels: cfg.MaxPixels}

	entries, err := rekog.LoadManifest(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	references := rekog.NewDatabase(cfg.DataDir, entries, decoder, sink)
	logger.WithFields(logrus.Fields{
		"data_dir": cfg.DataDir,
		"loaded":   references.Len(),
		"failed":   len(references.Failed()),
	}).Info("reference database ready")

	fetcher := rekog.NewHTTPFetcher(rekog.FetcherOptions{
		Timeout:  cfg.FetchTimeout,
		MaxBytes: cfg.MaxImageBytes,
		Logger:   logger,
	})
	return rekog.NewRewriter(references, fetcher, decoder, sink, rekog.Options{Recorder: m}), nil
}

func initRouter() *gin.Engine {
	router := gin.Default()

	router.Use(requestid.New())
	// Allow CORS for all origins
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length"},
	}))

	return router
}
