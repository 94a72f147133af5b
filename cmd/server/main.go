package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job-board/internal/auth"
	"job-board/internal/config"
	apphttp "job-board/internal/http"
	"job-board/internal/repository"
	"job-board/internal/repository/postgres"
	"job-board/internal/repository/sqlite"
	"job-board/internal/service"
	"job-board/internal/storage"
)

type repositories struct {
	users        repository.UserRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	close        func()
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer repos.close()

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:   cfg.Auth.JWTSecret,
		Lifetime: cfg.Auth.TokenLifetime,
	})
	if err != nil {
		logger.Fatalf("setup tokens: %v", err)
	}
	creds := auth.NewCredentials(cfg.Auth.BcryptCost)

	userService := service.NewUserService(repos.users, creds, tokens, logger)
	jobService := service.NewJobService(repos.jobs, logger)
	applicationService := service.NewApplicationService(repos.applications, repos.jobs, storageSvc, service.ApplicationConfig{
		KeyPrefix:        cfg.Storage.KeyPrefix,
		EnforceOwnership: cfg.Applications.EnforceOwnership,
	}, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	handler := apphttp.NewHandler(userService, jobService, applicationService, apphttp.Config{
		CookieLifetime: cfg.CookieLifetime(),
		CookieSecure:   cfg.Auth.CookieSecure,
		AllowedOrigins: cfg.Server.FrontendURLs,
		MaxResumeBytes: cfg.Applications.MaxResumeBytes,
	}, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.Log.Level == "" {
		return
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
		return
	}
	logger.SetLevel(level)
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*repositories, error) {
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		users := postgres.NewUserRepository(pool)
		jobs := postgres.NewJobRepository(pool)
		apps := postgres.NewApplicationRepository(pool)
		for _, r := range []interface{ Init(context.Context) error }{users, jobs, apps} {
			if err := r.Init(ctx); err != nil {
				pool.Close()
				return nil, fmt.Errorf("init schema: %w", err)
			}
		}
		logger.Info("using postgres database")
		return &repositories{users: users, jobs: jobs, applications: apps, close: pool.Close}, nil
	default:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		users := sqlite.NewUserRepository(db)
		jobs := sqlite.NewJobRepository(db)
		apps := sqlite.NewApplicationRepository(db)
		if err := sqlite.InitAll(ctx, users, jobs, apps); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
		logger.Infof("using sqlite database %s", cfg.Database.Path)
		return &repositories{users: users, jobs: jobs, applications: apps, close: func() { db.Close() }}, nil
	}
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	client, err := storage.NewS3Client(ctx, storage.ClientConfig{
		Region:          cfg.Storage.Region,
		Endpoint:        cfg.Storage.Endpoint,
		Profile:         cfg.AWS.Profile,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
	})
	if err != nil {
		return nil, err
	}
	svc, err := storage.NewS3Service(client, storage.S3Options{
		Bucket:        cfg.Storage.Bucket,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return svc, nil
}
