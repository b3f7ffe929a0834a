package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mwangikm/studenthub/internal/auth"
	"github.com/mwangikm/studenthub/internal/cache/redisclient"
	"github.com/mwangikm/studenthub/internal/config"
	"github.com/mwangikm/studenthub/internal/http/handlers"
	"github.com/mwangikm/studenthub/internal/http/middlewares"
	"github.com/mwangikm/studenthub/internal/observability"
	"github.com/mwangikm/studenthub/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(otelgin.Middleware("studenthub"))

	// metrics registry is per-router so repeated construction in tests
	// does not trip duplicate registration
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	r.Use(prom.GinHandleMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/health", h.Healthz)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	studentsRepo := postgres.NewStudentsRepo(pool, prom)
	coursesRepo := postgres.NewCoursesRepo(pool, prom)
	enrollmentsRepo := postgres.NewEnrollmentsRepo(pool, prom)

	// auth stack
	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	authn := auth.NewAuthenticator(usersRepo, tokens, log)
	authMW := middlewares.NewAuthMiddleware(authn)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(authn, tokens, usersRepo)
	studentsHandler := handlers.NewStudentsHandler(studentsRepo)
	coursesHandler := handlers.NewCoursesHandler(coursesRepo)
	enrollmentsHandler := handlers.NewEnrollmentsHandler(enrollmentsRepo)

	// login gets its own limiter; shared via redis when configured
	loginLimiter := loginRateLimiter(cfg, log)

	r.POST("/token", loginLimiter, authHandler.Login)
	r.POST("/users", authHandler.CreateUser)

	protected := r.Group("/")
	protected.Use(authMW.RequireAuth())

	protected.POST("/students", studentsHandler.CreateStudent)
	protected.GET("/students", studentsHandler.ListStudents)
	protected.GET("/students/:id", studentsHandler.GetStudentByID)
	protected.GET("/students/:id/courses", enrollmentsHandler.ListStudentCourses)
	protected.POST("/courses", coursesHandler.CreateCourse)
	protected.GET("/courses/:id", coursesHandler.GetCourseByID)
	protected.POST("/enrollments", enrollmentsHandler.Enroll)

	return r
}

func loginRateLimiter(cfg config.Config, log *slog.Logger) gin.HandlerFunc {
	const (
		limit  = 10
		window = time.Minute
	)

	if cfg.RedisAddr != "" {
		rc := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		log.Info("login rate limiter backed by redis", "addr", cfg.RedisAddr)

		return middlewares.NewRedisRateLimiter(rc.Raw(), limit, window).
			RateLimiterMiddleware(middlewares.KeyByIP)
	}

	return middlewares.NewRateLimiter(limit, window).
		RateLimiterMiddleware(middlewares.KeyByIP)
}
