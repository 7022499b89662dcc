package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bazarhat/backend/internal/config"
	"github.com/bazarhat/backend/internal/infra/mailer"
	s3infra "github.com/bazarhat/backend/internal/infra/s3"
	"github.com/bazarhat/backend/internal/jobs/cleanup"
	pgrepo "github.com/bazarhat/backend/internal/repo/postgres"
	redrepo "github.com/bazarhat/backend/internal/repo/redis"
	adssvc "github.com/bazarhat/backend/internal/services/ads"
	analyticsvc "github.com/bazarhat/backend/internal/services/analytics"
	automodsvc "github.com/bazarhat/backend/internal/services/automod"
	authsvc "github.com/bazarhat/backend/internal/services/auth"
	catsvc "github.com/bazarhat/backend/internal/services/categories"
	emailsvc "github.com/bazarhat/backend/internal/services/emaillog"
	favsvc "github.com/bazarhat/backend/internal/services/favorites"
	locsvc "github.com/bazarhat/backend/internal/services/locations"
	mediasvc "github.com/bazarhat/backend/internal/services/media"
	msgsvc "github.com/bazarhat/backend/internal/services/messaging"
	modsvc "github.com/bazarhat/backend/internal/services/moderation"
	permsvc "github.com/bazarhat/backend/internal/services/perms"
	profilesvc "github.com/bazarhat/backend/internal/services/profiles"
	ratesvc "github.com/bazarhat/backend/internal/services/rate"
	repsvc "github.com/bazarhat/backend/internal/services/reports"
	searchsvc "github.com/bazarhat/backend/internal/services/search"
	userssvc "github.com/bazarhat/backend/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	cacheRepo := redrepo.NewCacheRepo(redisClient)
	unreadRepo := redrepo.NewUnreadRepo(redisClient)

	adRepo := pgrepo.NewAdRepo(pool)
	adImageRepo := pgrepo.NewAdImageRepo(pool)
	editRequestRepo := pgrepo.NewEditRequestRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	favoriteRepo := pgrepo.NewFavoriteRepo(pool)
	savedSearchRepo := pgrepo.NewSavedSearchRepo(pool)
	conversationRepo := pgrepo.NewConversationRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)
	reportRepo := pgrepo.NewReportRepo(pool)
	categoryRepo := pgrepo.NewCategoryRepo(pool)
	emailRepo := pgrepo.NewEmailRepo(pool)
	roleRepo := pgrepo.NewRoleRepo(pool)
	autoModRepo := pgrepo.NewAutoModRepo(pool)
	auditRepo := pgrepo.NewAuditRepo(pool)
	statsRepo := pgrepo.NewStatsRepo(pool)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	adsStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.AdsBucket)
	avatarStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.AvatarBucket)
	mediaService := mediasvc.NewService(adsStorage, avatarStorage, cfg.Market.MaxImagesPerAd)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, profileRepo, roleRepo, cfg.Auth.RefreshTTL)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Rate.PostsPerMinute, cfg.Rate.PostsPerDay)

	adsService := adssvc.NewService(adRepo, editRequestRepo, adImageRepo, autoModRepo, rateLimiter, cfg.Market.PageSize, cfg.Market.ExpiryDays)
	moderationService := modsvc.NewService(adRepo, profileRepo, editRequestRepo, adImageRepo, auditRepo, adsStorage, cfg.Market.ExpiryDays)
	moderationService.SetDiffRowCap(cfg.Moderation.DiffRowCap)
	categoryService := catsvc.NewService(categoryRepo, cacheRepo)
	locationsService := locsvc.NewService(cfg.Market.Divisions)
	favoritesService := favsvc.NewService(favoriteRepo, savedSearchRepo, adRepo, cfg.Market.PageSize)
	messagingService := msgsvc.NewService(conversationRepo, messageRepo, adRepo, unreadRepo, cfg.Market.PageSize)
	reportsService := repsvc.NewService(reportRepo, adRepo, auditRepo, cfg.Market.PageSize)
	profileService := profilesvc.NewService(profileRepo, mediaService)
	searchService := searchsvc.NewService(adRepo, auditRepo, cfg.Market.PageSize)
	userService := userssvc.NewService(profileRepo, sessionRepo, cfg.Market.PageSize)
	permsService := permsvc.NewService(roleRepo)
	autoModService := automodsvc.NewService(autoModRepo)
	analyticsService := analyticsvc.NewService(statsRepo, cacheRepo)

	var emailSender emailsvc.Sender
	if m, err := mailer.New(cfg.Mailer.Endpoint, cfg.Mailer.From, cfg.Mailer.Timeout); err != nil {
		log.Warn("mailer init failed, emails will be logged only", zap.Error(err))
	} else {
		emailSender = m
	}
	emailService := emailsvc.NewService(emailRepo, emailSender, cfg.Market.PageSize)

	cleanupJob := cleanup.NewAdCleanupJob(adRepo, adImageRepo, adsStorage, cfg.Cleanup.Retention, log)
	if cfg.Cleanup.Interval > 0 {
		cleanupJob.Start(ctx, cfg.Cleanup.Interval)
	}

	RegisterRoutes(r, Dependencies{
		AdsService:        adsService,
		AnalyticsService:  analyticsService,
		AuthService:       authService,
		AutoModService:    autoModService,
		CategoryService:   categoryService,
		EmailService:      emailService,
		FavoritesService:  favoritesService,
		LocationsService:  locationsService,
		MediaService:      mediaService,
		MessagingService:  messagingService,
		ModerationService: moderationService,
		PermsService:      permsService,
		ProfileService:    profileService,
		ReportsService:    reportsService,
		SearchService:     searchService,
		UserService:       userService,
		AdImageRepo:       adImageRepo,
		AuditRepo:         auditRepo,
		Logger:            log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
