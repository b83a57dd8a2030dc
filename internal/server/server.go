package server

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
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"taskify/internal/auth"
	"taskify/internal/config"
	"taskify/internal/database"
	"taskify/internal/events"
	"taskify/internal/handler"
	"taskify/internal/logger"
	"taskify/internal/middleware"
	"taskify/internal/repository"
	"taskify/internal/service"
)

const serviceName = "taskify"

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config

	log   *logger.Logger
	redis *redis.Client
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth     *handler.AuthHandler
	Tasks    *handler.TaskHandler
	Projects *handler.ProjectHandler
	Team     *handler.TeamHandler
	Activity *handler.ActivityHandler
}

func Init(cfg *config.Config, log *logger.Logger) (*Server, error) {
	if cfg.RunMigrations {
		if err := database.Migrate(cfg); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("database migrations applied")
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	store := repository.NewStore(db)

	dispatcher := events.NewDispatcher(log,
		events.NewLogHandler(log),
		events.NewActivityRecorder(store.Activities()),
	)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, events will not be published", "addr", cfg.RedisAddr, "error", err)
		}
		dispatcher.Register(events.NewRedisPublisher(rdb, cfg.EventStream, events.WithMaxLen(10000)))
	}

	coordinator := service.NewCoordinator(store, log,
		service.WithDispatcher(dispatcher),
		service.WithPasswordHasher(auth.NewBcryptHasher()),
	)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	r := NewRouter(log, tokens, Handlers{
		Auth:     handler.NewAuthHandler(coordinator, tokens),
		Tasks:    handler.NewTaskHandler(coordinator),
		Projects: handler.NewProjectHandler(coordinator),
		Team:     handler.NewTeamHandler(coordinator),
		Activity: handler.NewActivityHandler(coordinator),
	})

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		log:    log,
		redis:  rdb,
	}, nil
}

// NewRouter mounts every route. Everything under /api except /api/auth
// requires a bearer token.
func NewRouter(log *logger.Logger, tokens middleware.TokenParser, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware(serviceName), middleware.RequestLogger(log))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Protected routes - require authentication
	authorized := api.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		// Task routes
		authorized.GET("/tasks", h.Tasks.List)
		authorized.POST("/tasks", h.Tasks.Create)
		authorized.GET("/tasks/:id", h.Tasks.GetByID)
		authorized.PUT("/tasks/:id", h.Tasks.Update)
		authorized.DELETE("/tasks/:id", h.Tasks.Delete)
		authorized.PATCH("/tasks/:id/status", h.Tasks.ChangeStatus)

		// Project routes
		authorized.GET("/projects", h.Projects.GetAll)
		authorized.POST("/projects", h.Projects.Create)
		authorized.GET("/projects/:id", h.Projects.GetByID)
		authorized.PUT("/projects/:id", h.Projects.Update)
		authorized.DELETE("/projects/:id", h.Projects.Delete)
		authorized.POST("/projects/:id/archive", h.Projects.Archive)

		// Team routes
		authorized.GET("/team/members", h.Team.GetAll)
		authorized.GET("/team/members/:id", h.Team.GetByID)
		authorized.POST("/team/invite", h.Team.Invite)
		authorized.PUT("/team/members/:id", h.Team.Update)
		authorized.DELETE("/team/members/:id", h.Team.Remove)
		authorized.POST("/team/members/:id/projects/:projectId", h.Team.AssignProject)
		authorized.DELETE("/team/members/:id/projects/:projectId", h.Team.UnassignProject)
		authorized.POST("/team/tasks/:taskId/assign/:userId", h.Team.AssignTask)
		authorized.POST("/team/tasks/:taskId/unassign", h.Team.UnassignTask)

		// Activity feed
		authorized.GET("/activity", h.Activity.Recent)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.log.Info("server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Fatal("failed to listen", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.log.Fatal("server forced to shutdown", "error", err)
	}
	s.Close()

	s.log.Info("server exited properly")
}

// Close releases the database pool and the redis client.
func (s *Server) Close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn("redis close failed", "error", err)
		}
	}
	if s.DB == nil {
		return
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.log.Warn("database close failed", "error", err)
		}
	}
}
