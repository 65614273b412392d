package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/config"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/infra/httpclient"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/jobs/cleanup"
	s3infra "github.com/PaulinaShao/Akilipesa-sub002/internal/infra/s3"
	pgrepo "github.com/PaulinaShao/Akilipesa-sub002/internal/repo/postgres"
	redrepo "github.com/PaulinaShao/Akilipesa-sub002/internal/repo/redis"
	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
	callsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/calls"
	chatsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/chat"
	entsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/entitlements"
	mediasvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/media"
	ratesvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/rate"
	reactsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/reactions"
	trialssvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/trials"
)

const otpHTTPTimeout = 10 * time.Second

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
	cleanupJob *cleanup.Job
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
	trialRepo := redrepo.NewTrialRepo(redisClient, cfg.Remote.Trials.StateTTL)
	rateRepo := redrepo.NewRateRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	callRepo := pgrepo.NewCallRepo(pool)
	reactionRepo := pgrepo.NewReactionRepo(pool)
	mediaRepo := pgrepo.NewMediaRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, userRepo, cfg.Auth.RefreshTTL)
	if cfg.Auth.OTPEndpoint != "" {
		authService.AttachOTP(authsvc.NewHTTPOTPVerifier(httpclient.New(otpHTTPTimeout), cfg.Auth.OTPEndpoint, cfg.Auth.OTPAPIKey))
	} else {
		authService.AttachOTP(authsvc.StaticOTPVerifier{Code: cfg.Auth.DevOTPCode})
	}

	ledger := trialssvc.NewLedger(trialRepo, trialssvc.Config{
		FreeCallsEnabled: cfg.Remote.Trials.FreeCallsEnabled,
		FreeCallsPerDay:  cfg.Remote.Trials.FreeCallsPerDay,
		AiTrialsPerDay:   cfg.Remote.Trials.AiTrialsPerDay,
		ReactionsPerDay:  cfg.Remote.Trials.ReactionsPerDay,
		CallCooldown:     cfg.Remote.Trials.CallCooldown,
		ResetTimezone:    cfg.Remote.Trials.ResetTimezone,
	})
	gate := entsvc.NewGate(ledger)

	callService := callsvc.NewService(callRepo, callsvc.Config{
		AppID:       cfg.RTC.AppID,
		TokenSecret: cfg.RTC.TokenSecret,
		TokenTTL:    cfg.RTC.TokenTTL,
	})

	chatService := chatsvc.NewService(chatsvc.NewOpenAICompleter(chatsvc.OpenAIConfig{
		APIKey:    cfg.OpenAI.APIKey,
		Model:     cfg.OpenAI.Model,
		MaxTokens: cfg.OpenAI.MaxTokens,
	}))
	chatLimiter := ratesvc.NewLimiter(rateRepo, "chat", cfg.Remote.AntiAbuse.ChatMaxPerMin, 0)

	reactionLimiter := ratesvc.NewLimiter(rateRepo, "reactions",
		cfg.Remote.AntiAbuse.ReactionMaxPerMin,
		cfg.Remote.AntiAbuse.ReactionMax10Sec,
	)
	reactionService := reactsvc.NewService(reactionRepo, reactionLimiter)

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

	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	mediaService := mediasvc.NewService(mediaRepo, mediaStorage)

	RegisterRoutes(r, Dependencies{
		AuthService:     authService,
		EntitlementGate: gate,
		CallService:     callService,
		ChatService:     chatService,
		ChatLimiter:     chatLimiter,
		ReactionService: reactionService,
		MediaService:    mediaService,
		Logger:          log,
		Config:          cfg,
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
		cleanupJob: cleanup.New(callRepo, reactionRepo, cfg.Jobs.Retention, log),
	}, nil
}

// RunCleanupLoop prunes aged rows on the configured interval until the
// context is cancelled.
func (a *App) RunCleanupLoop(ctx context.Context) error {
	if a.cleanupJob == nil {
		return nil
	}

	interval := a.cfg.Jobs.CleanupInterval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	if err := a.cleanupJob.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := a.cleanupJob.Run(ctx); err != nil {
				return err
			}
		}
	}
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
