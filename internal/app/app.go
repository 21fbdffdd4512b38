package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loctime/controldoc/internal/config"
	"github.com/loctime/controldoc/internal/domain/services"
	"github.com/loctime/controldoc/internal/infrastructure/cache"
	"github.com/loctime/controldoc/internal/infrastructure/database"
	"github.com/loctime/controldoc/internal/infrastructure/database/repositories"
	"github.com/loctime/controldoc/internal/infrastructure/storage"
	"github.com/loctime/controldoc/internal/interfaces/handlers"
	"github.com/loctime/controldoc/pkg/logger"
)

func Run(cfg config.Config) error {
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	store, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db.Pool())
	sessionRepo := repositories.NewSessionRepository(db.Pool())
	companyRepo := repositories.NewCompanyRepository(db.Pool())
	docRepo := repositories.NewRequiredDocumentRepository(db.Pool())
	submissionRepo := repositories.NewSubmissionRepository(db.SQLX())
	notificationRepo := repositories.NewNotificationRepository(db.Pool())

	cacheSvc := services.NewRedisCacheService(redisClient, cfg.Auth.CacheDuration)
	authSvc := services.NewAuthService(userRepo, sessionRepo, companyRepo, cfg.Auth.TokenDuration)
	inviteSvc := services.NewInvitationService(companyRepo, userRepo, cfg.Invitation.BaseURL)
	companySvc := services.NewCompanyService(companyRepo, userRepo, cacheSvc)
	docSvc := services.NewDocumentService(docRepo, cacheSvc)
	submissionSvc := services.NewSubmissionService(submissionRepo, docSvc, companySvc, notificationRepo)
	notificationSvc := services.NewNotificationService(notificationRepo)

	authHandler := handlers.NewAuthHandler(authSvc, inviteSvc)
	companyHandler := handlers.NewCompanyHandler(companySvc, inviteSvc, authSvc)
	docHandler := handlers.NewDocumentHandler(docSvc, companySvc, authSvc)
	submissionHandler := handlers.NewSubmissionHandler(submissionSvc, authSvc, store)
	notificationHandler := handlers.NewNotificationHandler(notificationSvc, authSvc)

	if cfg.Env != "dev" && cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.HeadToGetMiddleware())
	r.Use(handlers.CORSMiddleware())
	r.MaxMultipartMemory = cfg.Storage.MaxSize

	api := r.Group("/api")
	{
		api.POST("/register/admin", authHandler.RegisterAdmin)
		api.POST("/register/employee", authHandler.RegisterEmployee)
		api.GET("/invitations/validate", authHandler.ValidateInvitation)
		api.POST("/auth", authHandler.Authenticate)
		api.DELETE("/auth/:token", authHandler.Logout)

		api.POST("/companies", companyHandler.Create)
		api.GET("/companies", companyHandler.GetList)
		api.HEAD("/companies", companyHandler.GetList)
		api.GET("/companies/:id", companyHandler.GetByID)
		api.HEAD("/companies/:id", companyHandler.GetByID)
		api.DELETE("/companies/:id", companyHandler.Delete)
		api.GET("/companies/:id/invitation", companyHandler.InvitationLink)
		api.GET("/companies/:id/members", companyHandler.GetMembers)

		api.POST("/companies/:id/documents", docHandler.Create)
		api.GET("/companies/:id/documents", docHandler.GetListByCompany)
		api.HEAD("/companies/:id/documents", docHandler.GetListByCompany)
		api.GET("/documents/:id", docHandler.GetByID)
		api.HEAD("/documents/:id", docHandler.GetByID)
		api.DELETE("/documents/:id", docHandler.Delete)

		api.POST("/submissions", submissionHandler.Upload)
		api.GET("/submissions", submissionHandler.GetOwnList)
		api.HEAD("/submissions", submissionHandler.GetOwnList)
		api.GET("/submissions/:id", submissionHandler.GetByID)
		api.HEAD("/submissions/:id", submissionHandler.GetByID)
		api.GET("/submissions/:id/file", submissionHandler.Download)
		api.PUT("/submissions/:id/review", submissionHandler.Review)
		api.GET("/companies/:id/submissions", submissionHandler.GetReviewList)
		api.GET("/worklist", submissionHandler.Worklist)
		api.GET("/dashboard", submissionHandler.Dashboard)

		api.GET("/notifications", notificationHandler.GetList)
		api.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	}

	janitorDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sessionRepo.DeleteExpired(context.Background()); err != nil {
					logger.Warn("failed to prune expired sessions", zap.Error(err))
				}
			case <-janitorDone:
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	close(janitorDone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
