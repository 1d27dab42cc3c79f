package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/amanjaiswal-07/youtube-backend/config"
	"github.com/amanjaiswal-07/youtube-backend/controllers"
	"github.com/amanjaiswal-07/youtube-backend/database"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/logger"
	"github.com/amanjaiswal-07/youtube-backend/middleware"
	"github.com/amanjaiswal-07/youtube-backend/routes"
)

const (
	shutdownTimeout = 15 * time.Second
	rateLimitTTL    = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("❌ [main] invalid configuration")
	}

	log, err := logger.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("❌ [main] could not set up logging")
	}
	logger.SetDefault(log)
	log.Info("🔍 [main] Starting application...")

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("❌ [main] server stopped")
	}
	log.Info("👋 [main] server stopped")
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	store := database.NewStore(client, cfg.MongoDB)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.WithError(err).Warn("⚠️ [main] mongo disconnect failed")
		}
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Info("✅ [main] MongoDB initialized successfully")

	assets, err := helpers.NewAssetHost(ctx, cfg)
	if err != nil {
		return err
	}

	router := newRouter(cfg, log, store, assets)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("🚀 [main] Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("🔍 [main] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg *config.Config, log *logrus.Logger, store *database.Store, assets helpers.AssetHost) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	tokens := helpers.NewTokenMaker(cfg)
	uploads := helpers.NewSpooler(cfg.UploadDir, cfg.MaxUploadMB)

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, rateLimitTTL)))

	routes.Register(router, routes.Handlers{
		Users: &controllers.UserController{
			Users:        store,
			Views:        store,
			Assets:       assets,
			Uploads:      uploads,
			Tokens:       tokens,
			CookieSecure: cfg.CookieSecure,
		},
		Videos: &controllers.VideoController{
			Videos:  store,
			Views:   store,
			Assets:  assets,
			Uploads: uploads,
		},
		Comments:      &controllers.CommentController{Comments: store, Views: store},
		Likes:         &controllers.LikeController{Likes: store, Views: store},
		Tweets:        &controllers.TweetController{Tweets: store, Views: store, Assets: assets, Uploads: uploads},
		Subscriptions: &controllers.SubscriptionController{Subscriptions: store, Views: store},
		Playlists:     &controllers.PlaylistController{Playlists: store, Views: store},
		Health:        &controllers.HealthController{DB: store},
		Auth:          middleware.Authentication(tokens),
		OptionalAuth:  middleware.OptionalAuthentication(tokens),
	})
	log.Info("✅ [main] Routes registered")

	return router
}
