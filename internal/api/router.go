package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soyleaf/soyleaf-api/internal/api/handler"
	"github.com/soyleaf/soyleaf-api/internal/api/middleware"
	"github.com/soyleaf/soyleaf-api/internal/classifier"
	"github.com/soyleaf/soyleaf-api/internal/core/ports"
	"github.com/soyleaf/soyleaf-api/internal/core/service"
	mongodb "github.com/soyleaf/soyleaf-api/internal/infrastructure/db/mongo"
	redisdb "github.com/soyleaf/soyleaf-api/internal/infrastructure/db/redis"
	"github.com/soyleaf/soyleaf-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// engine may be nil when the model artifact is absent; classification then
// responds 503 while every other route keeps working.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	engine ports.InferenceEngine,
	registry *classifier.Registry,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("soyleaf"))

	// --- Dependencies ---
	sessionStore := redisdb.NewSessionStore(rdb)
	userRepo := mongodb.NewUserRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db)

	authService := service.NewAuthService(userRepo, sessionStore, cfg.JWTSecret, cfg.SessionTTL, log)
	reportService := service.NewReportService(reportRepo, log)
	classifyService := service.NewClassifyService(engine, registry, reportRepo,
		cfg.Upload.Dir, cfg.Predict.DisplayDecimals, cfg.Predict.RecordDecimals, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	userHandler := handler.NewUserHandler(authService, reportService)
	reportHandler := handler.NewReportHandler(reportService)
	classifyHandler := handler.NewClassifyHandler(classifyService, cfg.Upload.MaxMB)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	// --- Public routes ---
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/contact", feedbackHandler.ContactForm)
	e.POST("/contact", feedbackHandler.Contact)

	// --- Session-gated routes ---
	gate := middleware.SessionGate(cfg.JWTSecret, sessionStore)
	gated := e.Group("", gate)
	gated.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	})
	gated.GET("/logout", authHandler.Logout)
	gated.GET("/dashboard", userHandler.Dashboard)
	gated.GET("/profile", userHandler.Profile)
	gated.GET("/past-report", reportHandler.PastReports)
	gated.GET("/upload_img", classifyHandler.UploadForm)
	gated.POST("/upload_img", classifyHandler.Upload)

	// --- Uploaded images referenced by reports ---
	e.Static("/static/uploads", cfg.Upload.Dir)

	// --- Health probes, metrics, docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb, engine)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
