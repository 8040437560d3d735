package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm/logger"

	"github.com/Williamtrix2022/uniplan/internal/config"
	"github.com/Williamtrix2022/uniplan/internal/database"
	"github.com/Williamtrix2022/uniplan/internal/handlers"
	"github.com/Williamtrix2022/uniplan/internal/middleware"
	"github.com/Williamtrix2022/uniplan/internal/monitoring"
	"github.com/Williamtrix2022/uniplan/internal/repositories"
	"github.com/Williamtrix2022/uniplan/internal/services"
)

// Application holds every long-lived dependency. Services are stateless;
// the pool and optional redis client are the only shared resources.
type Application struct {
	Config *config.Config
	Pool   *database.Pool
	Redis  *redis.Client
	Router *gin.Engine
	Server *http.Server

	AuthService      services.AuthService
	StudentService   services.StudentService
	SubjectService   services.SubjectService
	TaskService      services.TaskService
	NoteService      services.NoteService
	CalendarService  services.CalendarService
	PomodoroService  services.PomodoroService
	DashboardService services.DashboardService
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.SetProductionMode(cfg.IsProduction())

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	log.Println("🚀 Initializing Uniplan Backend...")
	log.Printf("📋 Environment: %s", cfg.Server.Environment)

	logLevel := logger.Warn
	if !cfg.IsProduction() {
		logLevel = logger.Info
	}

	pool, err := database.NewPool(cfg.Database, cfg.GetDSN(), logLevel)
	if err != nil {
		return nil, err
	}
	app.Pool = pool
	log.Println("✅ Database connected and configured")

	migrationConfig := &repositories.MigrationConfig{
		MigrationsPath: "file://migrations",
		DBName:         cfg.Database.Name,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
	if err := repositories.RunMigrations(pool.DB, migrationConfig); err != nil {
		return nil, err
	}

	if cfg.GetRedisAddr() != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("⚠️  Redis unavailable: %v (falling back to in-process rate limiting)", err)
		} else {
			app.Redis = redisClient
			log.Println("✅ Redis connected")
		}
	}

	app.AuthService = services.NewAuthService(cfg.JWT.Secret, cfg.JWT.TTL)
	app.StudentService = services.NewStudentService()
	app.SubjectService = services.NewSubjectService()
	app.TaskService = services.NewTaskService()
	app.NoteService = services.NewNoteService()
	app.CalendarService = services.NewCalendarService()
	app.PomodoroService = services.NewPomodoroService()
	app.DashboardService = services.NewDashboardService(
		app.SubjectService,
		app.TaskService,
		app.NoteService,
		app.CalendarService,
		app.PomodoroService,
	)
	log.Println("✅ All services initialized")

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		return app.Pool.Health()
	})
	if app.Redis != nil {
		monitoring.RegisterHealthCheck("redis", func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(middleware.RecoveryWithLog())
	r.Use(middleware.SecureHeader())

	if app.Redis != nil {
		limiter := middleware.NewDistributedRateLimiter(app.Redis, app.Config.RateLimit.RequestsPerMin, time.Minute)
		r.Use(limiter.Middleware())
	} else {
		rateLimit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
		r.Use(middleware.RateLimiter(rateLimit, app.Config.RateLimit.BurstSize))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", app.directoryHandler())
	r.GET("/api/health", app.healthHandler())
	r.GET("/ready", monitoring.ReadinessHandler())
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	authHandler := handlers.NewAuthHandler(app.Pool.DB, app.AuthService)
	studentHandler := handlers.NewStudentHandler(app.Pool.DB, app.StudentService)
	subjectHandler := handlers.NewSubjectHandler(app.Pool.DB, app.SubjectService)
	taskHandler := handlers.NewTaskHandler(app.Pool.DB, app.TaskService)
	noteHandler := handlers.NewNoteHandler(app.Pool.DB, app.NoteService)
	calendarHandler := handlers.NewCalendarHandler(app.Pool.DB, app.CalendarService)
	pomodoroHandler := handlers.NewPomodoroHandler(app.Pool.DB, app.PomodoroService)
	dashboardHandler := handlers.NewDashboardHandler(app.Pool.DB, app.DashboardService)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/registro", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/perfil", middleware.Auth(app.Config.JWT.Secret), authHandler.Profile)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(app.Config.JWT.Secret))
	{
		students := protected.Group("/estudiantes")
		{
			students.GET("", studentHandler.List)
			students.GET("/:id", studentHandler.GetByID)
			students.PUT("/:id", studentHandler.Update)
			students.DELETE("/:id", studentHandler.Delete)
		}

		subjects := protected.Group("/materias")
		{
			subjects.POST("", subjectHandler.Create)
			subjects.GET("", subjectHandler.List)
			subjects.GET("/stats", subjectHandler.Stats)
			subjects.GET("/:id", subjectHandler.GetByID)
			subjects.PUT("/:id", subjectHandler.Update)
			subjects.DELETE("/:id", subjectHandler.Delete)
		}

		tasks := protected.Group("/tareas")
		{
			tasks.POST("", taskHandler.Create)
			tasks.GET("", taskHandler.List)
			tasks.GET("/stats", taskHandler.Stats)
			tasks.GET("/proximas", taskHandler.Upcoming)
			tasks.GET("/:id", taskHandler.GetByID)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.PATCH("/:id/completar", taskHandler.Complete)
			tasks.DELETE("/:id", taskHandler.Delete)
		}

		notes := protected.Group("/notas")
		{
			notes.POST("", noteHandler.Create)
			notes.GET("", noteHandler.List)
			notes.GET("/stats", noteHandler.Stats)
			notes.GET("/favoritas", noteHandler.Favorites)
			notes.GET("/recientes", noteHandler.Recent)
			notes.GET("/:id", noteHandler.GetByID)
			notes.PUT("/:id", noteHandler.Update)
			notes.PATCH("/:id/favorito", noteHandler.ToggleFavorite)
			notes.DELETE("/:id", noteHandler.Delete)
		}

		calendar := protected.Group("/calendario")
		{
			calendar.POST("", calendarHandler.Create)
			calendar.GET("", calendarHandler.List)
			calendar.GET("/stats", calendarHandler.Stats)
			calendar.GET("/hoy", calendarHandler.Today)
			calendar.GET("/semana", calendarHandler.Week)
			calendar.GET("/mes", calendarHandler.Month)
			calendar.GET("/recordatorios", calendarHandler.Reminders)
			calendar.GET("/:id", calendarHandler.GetByID)
			calendar.PUT("/:id", calendarHandler.Update)
			calendar.DELETE("/:id", calendarHandler.Delete)
		}

		pomodoro := protected.Group("/pomodoro")
		{
			pomodoro.POST("", pomodoroHandler.Create)
			pomodoro.GET("", pomodoroHandler.List)
			pomodoro.GET("/hoy", pomodoroHandler.Today)
			pomodoro.GET("/stats", pomodoroHandler.Stats)
			pomodoro.GET("/stats/materia", pomodoroHandler.StatsBySubject)
			pomodoro.GET("/stats/dia", pomodoroHandler.StatsByDay)
			pomodoro.GET("/:id", pomodoroHandler.GetByID)
			pomodoro.PUT("/:id", pomodoroHandler.Update)
			pomodoro.PATCH("/:id/completar", pomodoroHandler.Complete)
			pomodoro.DELETE("/:id", pomodoroHandler.Delete)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("", dashboardHandler.Dashboard)
			dashboard.GET("/semanal", dashboardHandler.Weekly)
			dashboard.GET("/hoy", dashboardHandler.Today)
		}
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("✅ Server stopped gracefully")
	}()

	log.Printf("🚀 Server starting on %s", addr)
	log.Printf("📊 Metrics available at http://%s/metrics", addr)
	log.Printf("💚 Health check at http://%s/api/health", addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			log.Printf("⚠️  Error closing Redis: %v", err)
		}
	}

	if app.Pool != nil {
		if err := app.Pool.Close(); err != nil {
			log.Printf("⚠️  Error closing database: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}

// directoryHandler lists the API surface so the root URL is self-describing.
func (app *Application) directoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "API de Uniplan funcionando correctamente",
			"endpoints": gin.H{
				"auth":        "/api/auth",
				"estudiantes": "/api/estudiantes",
				"materias":    "/api/materias",
				"tareas":      "/api/tareas",
				"notas":       "/api/notas",
				"calendario":  "/api/calendario",
				"pomodoro":    "/api/pomodoro",
				"dashboard":   "/api/dashboard",
			},
		})
	}
}

func (app *Application) healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := baseHealth()

		if err := app.Pool.Health(); err != nil {
			health["success"] = false
			health["status"] = "unhealthy"
			health["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}
		health["database"] = "up"

		if app.Redis != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := app.Redis.Ping(ctx).Err(); err != nil {
				health["redis"] = "down"
			} else {
				health["redis"] = "up"
			}
		}

		c.JSON(http.StatusOK, health)
	}
}

// baseHealth carries the fields every health response includes. Uptime is
// reported in seconds since process start.
func baseHealth() gin.H {
	return gin.H{
		"success":   true,
		"status":    "healthy",
		"service":   "uniplan-backend",
		"uptime":    monitoring.Uptime().Seconds(),
		"timestamp": time.Now().Format(time.RFC3339),
	}
}
