package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/api/ask"
	"github.com/Conversly/autoskola-bot/internal/config"
	"github.com/Conversly/autoskola-bot/internal/facts"
	"github.com/Conversly/autoskola-bot/internal/faqsync"
	"github.com/Conversly/autoskola-bot/internal/llm"
	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/routes"
	"github.com/Conversly/autoskola-bot/internal/search"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Warning: Error loading .env file", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	cleanup := utils.InitLogger(cfg)
	defer cleanup()

	utils.Zlog.Info("Starting application",
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBackend))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, closeStore, err := newStore(cfg)
	if err != nil {
		utils.Zlog.Error("Failed to create record store", zap.Error(err))
		os.Exit(1)
	}
	defer closeStore()

	completer, err := llm.NewClient(llm.Config{
		APIKeys:     cfg.OpenAIAPIKeys,
		Model:       cfg.OpenAIModel,
		BaseURL:     cfg.OpenAIBaseURL,
		Temperature: 0.3,
	})
	if err != nil {
		utils.Zlog.Error("Failed to create completion client", zap.Error(err))
		os.Exit(1)
	}

	deps := routes.Deps{Store: store}
	var index search.Index
	if len(cfg.ElasticAddresses) > 0 {
		faqIndex, err := search.NewFAQIndex(cfg.ElasticAddresses, cfg.FAQIndex)
		if err != nil {
			utils.Zlog.Error("Failed to create search index client", zap.Error(err))
			os.Exit(1)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := faqIndex.Ping(pingCtx); err != nil {
			utils.Zlog.Warn("Search index unreachable at startup", zap.Error(err))
		}
		cancel()
		index = faqIndex

		syncer := faqsync.NewSyncer(store, faqIndex, newStateStore(ctx, cfg))
		syncer.Start(ctx, cfg.FAQSyncInterval)
		defer syncer.Stop()

		deps.Syncer = syncer
		deps.Index = faqIndex
	}

	deps.Ask = ask.NewService(store, completer,
		facts.NewRouter(facts.Options{GroupInstructorSlugs: cfg.InstructorGroupSlugs}),
		index,
		ask.Options{
			TenantFAQ:   cfg.FAQScope == config.FAQScopeTenant,
			FactsDirect: cfg.FactsDirect,
			Timeout:     cfg.OpenAITimeout,
		})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	routes.SetupRoutes(router, deps, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OpenAITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Zlog.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Zlog.Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Zlog.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Zlog.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	utils.Zlog.Info("Server exited")
}

func newStore(cfg *config.Config) (loaders.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := loaders.NewPostgresStore(cfg.DatabaseURL, 10)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() {
			if err := pg.Close(); err != nil {
				utils.Zlog.Error("Error closing database connection", zap.Error(err))
			}
		}, nil
	default:
		at, err := loaders.NewAirtableStore(loaders.AirtableConfig{
			APIKey:       cfg.AirtableAPIKey,
			BaseID:       cfg.AirtableBaseID,
			GlobalBaseID: cfg.AirtableGlobalBaseID,
			RPS:          cfg.AirtableRPS,
		})
		if err != nil {
			return nil, nil, err
		}
		return at, func() {}, nil
	}
}

// newStateStore shares the sync debounce through Redis when configured.
func newStateStore(ctx context.Context, cfg *config.Config) faqsync.StateStore {
	if cfg.RedisURL == "" {
		return faqsync.NewMemoryStateStore(faqsync.DefaultMinInterval)
	}
	client, err := faqsync.NewRedisClient(cfg.RedisURL)
	if err != nil {
		utils.Zlog.Warn("Invalid REDIS_URL, keeping sync state in memory", zap.Error(err))
		return faqsync.NewMemoryStateStore(faqsync.DefaultMinInterval)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		utils.Zlog.Warn("Redis unreachable, keeping sync state in memory", zap.Error(err))
		_ = client.Close()
		return faqsync.NewMemoryStateStore(faqsync.DefaultMinInterval)
	}
	return faqsync.NewRedisStateStore(client, "", faqsync.DefaultMinInterval)
}
