package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"takosu/database"
	"takosu/internal/config"
	"takosu/internal/microservices/http-api/handler"
	"takosu/internal/microservices/http-api/middleware"
	"takosu/internal/microservices/http-api/repository"
	"takosu/internal/microservices/http-api/service"
	"takosu/internal/microservices/notify"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// Redis lets several API instances wake each other's long polls
	var notifier notify.Notifier
	if cfg.RedisURL != "" {
		rn, err := notify.NewRedisNotifier(cfg.RedisURL, logger)
		if err != nil {
			logger.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		notifier = rn
	} else {
		logger.Warn("REDIS_URL not set, long polls only wake within this process")
		notifier = notify.NewLocalNotifier()
	}
	defer notifier.Close()

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	animeRepo := repository.NewAnimeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	mediaStore := repository.NewDiskMediaStore(cfg.MediaRoot)

	loc := cfg.Location()
	longPoll := service.NewLongPoll(notifier, cfg.LongPollTimeout, cfg.LongPollInterval, logger)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	chatService := service.NewChatService(conversationRepo, longPoll, cfg.MediaURL, loc)
	commentService := service.NewCommentService(commentRepo, animeRepo, longPoll, loc)
	catalogService := service.NewCatalogService(animeRepo, cfg.MediaURL)
	profileService := service.NewProfileService(profileRepo, animeRepo, mediaStore, cfg.MediaURL)
	suggestionService := service.NewSuggestionService(suggestionRepo, loc)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive"})
	})

	// uploaded icons; absolute MEDIA_URLs point at a CDN that serves them instead
	if strings.HasPrefix(cfg.MediaURL, "/") {
		r.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	limiter := middleware.NewPostLimiter(cfg.PostRateLimit, cfg.PostRateBurst)
	handler.SetupRoutes(r, handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, logger),
		Catalog:    handler.NewCatalogHandler(catalogService, logger),
		Chat:       handler.NewChatHandler(chatService, logger),
		Comment:    handler.NewCommentHandler(commentService, logger),
		Profile:    handler.NewProfileHandler(profileService, logger),
		Suggestion: handler.NewSuggestionHandler(suggestionService, logger),
	}, middleware.AuthMiddleware(authService), limiter.Middleware())

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		MaxAge:           300,
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
		// a long poll holds the response open for up to LongPollTimeout
		WriteTimeout: cfg.LongPollTimeout + 10*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Sweep()
			}
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "tls", cfg.TLSEnabled)
		var err error
		if cfg.TLSEnabled {
			err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errChan:
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LongPollTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped gracefully")
}
