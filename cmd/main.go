package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"taskboard/api/handler"
	apiMiddleware "taskboard/api/middleware"
	"taskboard/api/routes"
	"taskboard/config"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("config load failed")
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	validate := validator.New()

	jwtManager := utils.JWTManager{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		TokenTTL: cfg.TokenTTL,
	}
	totp := service.NewTOTP(cfg.TOTPIssuer)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewTaskCommentRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)

	authService := service.NewAuthService(
		userRepo,
		securityRepo,
		service.BcryptPasswordHasher{},
		jwtManager,
		totp,
		service.AuthConfig{
			TokenTTL:   cfg.TokenTTL,
			TOTPIssuer: cfg.TOTPIssuer,
		},
	)
	adminService := service.NewAdminService(userRepo, securityRepo)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo, memberRepo, userRepo, service.RealClock{})
	taskService := service.NewTaskService(taskRepo, commentRepo, projectRepo, userRepo)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		err := authService.RegisterAdmin(
			context.Background(),
			cfg.AdminFirstName,
			cfg.AdminLastName,
			cfg.AdminEmail,
			cfg.AdminPassword,
		)
		if err != nil {
			logger.WithError(err).Fatal("admin seeding failed")
		}
	}

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager, Users: userRepo}
	router := routes.NewRouter(
		app,
		handler.NewAuthHandler(authService, validate),
		handler.NewUserHandler(userService),
		handler.NewAdminHandler(adminService, validate),
		handler.NewProjectHandler(projectService, validate),
		handler.NewTaskHandler(taskService, validate),
		authMiddleware,
	)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
