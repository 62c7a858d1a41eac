package cmd

import (
	"database/sql"
	"net"

	"github.com/vibast-solutions/ms-go-accounts/app/controller"
	"github.com/vibast-solutions/ms-go-accounts/app/jobs"
	"github.com/vibast-solutions/ms-go-accounts/app/middleware"
	"github.com/vibast-solutions/ms-go-accounts/app/repository"
	"github.com/vibast-solutions/ms-go-accounts/app/service"
	"github.com/vibast-solutions/ms-go-accounts/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and background jobs",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	configureLogging(cfg)

	db, err := sql.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tokenRepo := repository.NewResetTokenRepository(db)

	tokenService := service.NewTokenService(cfg)
	authService := service.NewAuthService(userRepo, tokenService, cfg)
	roleService := service.NewRoleService(roleRepo)
	resetService := service.NewPasswordResetService(db, userRepo, tokenRepo, service.NewLogSender(cfg), cfg)

	scheduler := jobs.Start(cfg, tokenRepo)
	defer scheduler.Stop()

	startHTTPServer(cfg, db, authService, roleService, resetService, userRepo, tokenRepo)
}

func configureLogging(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func startHTTPServer(
	cfg *config.Config,
	db *sql.DB,
	authService *service.AuthService,
	roleService *service.RoleService,
	resetService *service.PasswordResetService,
	userRepo *repository.UserRepository,
	tokenRepo *repository.ResetTokenRepository,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler()

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	authController := controller.NewAuthController(authService, resetService, roleService, cfg)
	dashboardController := controller.NewDashboardController(userRepo, tokenRepo)
	healthController := controller.NewHealthController(db)
	authMiddleware := middleware.NewAuthMiddleware(authService, roleService)

	e.GET("/livez", healthController.Livez)
	e.GET("/readyz", healthController.Readyz)

	auth := e.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.Refresh)
	auth.POST("/logout", authController.Logout)
	auth.POST("/reset/request", authController.RequestPasswordReset)
	auth.POST("/reset/confirm", authController.ConfirmPasswordReset)
	auth.GET("/me", authController.Me, authMiddleware.RequireAuth)

	e.GET("/dashboard", dashboardController.Load, authMiddleware.RequireAuth)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}
