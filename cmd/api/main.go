package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"gita-wellness/internal/assessment"
	"gita-wellness/internal/config"
	"gita-wellness/internal/db"
	"gita-wellness/internal/email"
	"gita-wellness/internal/facepp"
	apihttp "gita-wellness/internal/http"
	"gita-wellness/internal/recommend"
	"gita-wellness/internal/repository"
	"gita-wellness/internal/service"
	"gita-wellness/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	questionRepo := repository.NewPgQuestionRepository(pool)
	mantraRepo := repository.NewPgMantraRepository(pool)
	storyRepo := repository.NewPgStoryRepository(pool)
	songRepo := repository.NewPgSongRepository(pool)
	historyRepo := repository.NewPgHistoryRepository(pool)

	var (
		tokenStore  service.RefreshTokenStore
		sessionKV   assessment.KV
		redisClient *redis.Client
	)
	sessionKV = assessment.NewMemoryKV()
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			sessionKV = assessment.NewRedisKV(redisClient, cfg.SessionTTL)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, tokenStore)

	emailSender := email.NewDisabledSender("email sender not configured")
	switch {
	case cfg.ResendAPIKey != "":
		sender, err := email.NewResendSender("", cfg.ResendAPIKey, cfg.ResendFrom)
		if err != nil {
			logger.Warn("resend sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	case cfg.SMTPHost != "":
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	uploader := storage.NewDisabledUploader(logger)
	if cfg.StorageBaseURL != "" {
		up, err := storage.NewHTTPUploader(cfg.StorageBaseURL, cfg.StorageAPIKey, cfg.StorageBucket, logger)
		if err != nil {
			logger.Warn("storage uploader init failed", zap.Error(err))
		} else {
			uploader = up
		}
	}

	if cfg.FaceppAPIKey == "" || cfg.FaceppAPISecret == "" {
		logger.Warn("facepp credentials not configured, face analysis will fail")
	}
	detector := facepp.NewHTTPClient(cfg.FaceppBaseURL, cfg.FaceppAPIKey, cfg.FaceppAPISecret, logger)

	resolver := recommend.NewResolver(mantraRepo, storyRepo, songRepo, logger)
	sessionStore := assessment.NewStore(sessionKV, questionRepo)

	userSvc := service.NewUserService(logger, userRepo)
	assessSvc := service.NewAssessmentService(logger, sessionStore, resolver, historyRepo, userRepo, emailSender)
	faceSvc := service.NewFaceService(logger, detector, resolver, historyRepo, userRepo, emailSender)
	ecgSvc := service.NewECGService(logger, uploader, resolver, historyRepo, userRepo, emailSender)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	assessHandler := apihttp.NewAssessmentHandler(logger, assessSvc)
	faceHandler := apihttp.NewFaceHandler(logger, faceSvc)
	ecgHandler := apihttp.NewECGHandler(logger, ecgSvc)
	recHandler := apihttp.NewRecommendationHandler(logger, resolver, historyRepo)

	router := apihttp.NewRouter(logger, jwtSvc, userHandler, assessHandler, faceHandler, ecgHandler, recHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
