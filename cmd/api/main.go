package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"nexusmarket/internal/adapter/api"
	"nexusmarket/internal/adapter/api/handler"
	apimiddleware "nexusmarket/internal/adapter/api/middleware"
	"nexusmarket/internal/adapter/api/router"
	"nexusmarket/internal/adapter/repository"
	"nexusmarket/internal/infrastructure/firebase"
	"nexusmarket/internal/infrastructure/ratelimit"
	"nexusmarket/internal/infrastructure/storage"
	"nexusmarket/internal/infrastructure/token"
	"nexusmarket/internal/infrastructure/websocket"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/config"
	"nexusmarket/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetDebug(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []option.ClientOption
	if cfg.NeedsGoogleCredentials() {
		opts, err = storage.ClientOptions(cfg)
		if err != nil {
			log.Fatalf("Failed to load Google credentials: %v", err)
		}
	}

	store, err := storage.NewBlobStore(ctx, cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.StorageBackend, err)
	}
	defer store.Close()

	userRepo := repository.NewBlobUserRepository(store)
	productRepo := repository.NewBlobProductRepository(store)
	conversationRepo := repository.NewBlobConversationRepository(store)
	wishlistRepo := repository.NewBlobWishlistRepository(store)
	jobRepo := repository.NewBlobJobRepository(store)
	applicationRepo := repository.NewBlobApplicationRepository(store)

	var limiter *ratelimit.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = ratelimit.NewRateLimiter(ratelimit.DefaultLimits)
		limiter.StartCleanupRoutine(ctx)
	}

	var (
		issuer   usecase.TokenIssuer
		verifier usecase.TokenVerifier
	)
	switch cfg.AuthProvider {
	case config.AuthFirebase:
		firebaseAuthClient, err := firebase.NewAuthClientForProject(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
		verifier = firebaseAuthClient
	default:
		jwtManager := token.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
		issuer, verifier = jwtManager, jwtManager
	}

	authUseCase := usecase.NewAuthUseCase(userRepo, issuer, verifier)
	userUseCase := usecase.NewUserUseCase(userRepo)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo)
	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo, productRepo)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, userRepo, productRepo, limiter)
	jobUseCase := usecase.NewJobUseCase(jobRepo, applicationRepo, userRepo)
	dashboardUseCase := usecase.NewDashboardUseCase(productRepo, jobRepo, applicationRepo, conversationRepo)

	if cfg.SeedDemoAccount && cfg.AuthProvider == config.AuthLocal {
		if err := authUseCase.SeedDemoAccount(ctx); err != nil {
			logger.Warn("main: seeding demo account failed: %v", err)
		}
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	handler.Setup(authUseCase, userUseCase, productUseCase, chatUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)

	router.Setup(e, router.Handlers{
		Health:    handler.NewHealthHandler(cfg.StorageBackend, wsManager),
		Chat:      handler.NewChatHandler(chatUseCase),
		Wishlist:  handler.NewWishlistHandler(wishlistUseCase),
		Job:       handler.NewJobHandler(jobUseCase),
		Dashboard: handler.NewDashboardHandler(dashboardUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager, chatUseCase, cfg.PollInterval),
	}, authMiddleware, limiter)

	go func() {
		log.Printf("Starting server on port %s (storage=%s, auth=%s)...", cfg.ServerPort, cfg.StorageBackend, cfg.AuthProvider)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
