package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierhq/atelier/internal/cache"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/domain/assistant"
	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
	"github.com/atelierhq/atelier/internal/domain/user"
	"github.com/atelierhq/atelier/internal/extract"
	"github.com/atelierhq/atelier/internal/httpapi"
	"github.com/atelierhq/atelier/internal/identity"
	"github.com/atelierhq/atelier/internal/llm"
	"github.com/atelierhq/atelier/internal/mcp"
	"github.com/atelierhq/atelier/internal/sqlite"
	"github.com/atelierhq/atelier/internal/storage"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if cfg.Auth.JWTSecret == "" {
		logger.Error("ATELIER_JWT_SECRET is required")
		os.Exit(1)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Redis backs view invalidation and assistant history. The server can
	// run without it, with both features disabled.
	var views *cache.Views
	var history *cache.History
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, view cache and assistant history disabled", "error", err)
	} else {
		defer redisClient.Close()
		views = cache.NewViews(redisClient)
		history = cache.NewHistory(redisClient)
	}

	store, err := storage.NewMinioStore(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to connect to object storage", "error", err)
		os.Exit(1)
	}

	model, err := llm.NewClient(cfg.LLM)
	if err != nil {
		logger.Error("failed to create llm client", "error", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(db)
	clientRepo := sqlite.NewClientRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	documentRepo := sqlite.NewDocumentRepository(db)

	userSvc := user.NewService(userRepo, logger)
	clientSvc := client.NewService(clientRepo, userSvc, viewsOrNil(views), logger)
	projectSvc := project.NewService(projectRepo, viewsOrNil(views), logger)
	taskSvc := task.NewService(taskRepo, viewsOrNil(views), logger)
	documentSvc := document.NewService(documentRepo, store, extract.New(logger), userSvc, viewsOrNil(views), logger)
	assistantSvc := assistant.NewService(projectRepo, clientRepo, documentRepo, model, historyOrNil(history), logger)

	verifier := identity.NewVerifier(cfg.Auth.JWTSecret)

	apiRouter := httpapi.NewRouter(verifier, httpapi.Services{
		Users:     userSvc,
		Clients:   clientSvc,
		Projects:  projectSvc,
		Tasks:     taskSvc,
		Documents: documentSvc,
		Assistant: assistantSvc,
	}, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Clients:   clientSvc,
			Projects:  projectSvc,
			Tasks:     taskSvc,
			Documents: documentSvc,
			Assistant: assistantSvc,
		},
		Verifier: verifier,
		Logger:   logger,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.Handle("/", apiRouter)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// viewsOrNil keeps a typed-nil *cache.Views from masquerading as a
// non-nil interface inside the services.
func viewsOrNil(v *cache.Views) client.Views {
	if v == nil {
		return nil
	}
	return v
}

func historyOrNil(h *cache.History) assistant.History {
	if h == nil {
		return nil
	}
	return h
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
