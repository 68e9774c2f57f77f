package api

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Community-Programmer/task-manager/middleware/ratelimit"
	"github.com/Community-Programmer/task-manager/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

// Config holds the API module configuration.
type Config struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string
	// AllowOrigins restricts CORS origins; empty allows any origin.
	AllowOrigins string
	// RedisAddr enables rate limiting on the public auth endpoints when
	// non-empty.
	RedisAddr     string
	RedisPassword string
}

// APIModule is the HTTP surface of the application.
type APIModule struct {
	config        Config
	app           *fiber.App
	redis         *redis.Client
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule with the given configuration.
func NewModule(config Config) *APIModule {
	return &APIModule{
		config: config,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskContainer = container
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(ctx context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskContainer == nil {
		return fmt.Errorf("task dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	// Add middleware
	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	if m.config.AllowOrigins != "" {
		m.app.Use(cors.New(cors.Config{
			AllowOrigins:     m.config.AllowOrigins,
			AllowCredentials: true,
		}))
	} else {
		m.app.Use(cors.New())
	}

	authLimiter, err := m.setupRateLimiter(ctx)
	if err != nil {
		return err
	}

	m.setupRoutes(authLimiter)

	// Start server in goroutine
	go func() {
		if err := m.app.Listen(m.config.Addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.config.Addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.redis != nil {
		m.redis.Close()
	}
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.config.Addr,
		},
	}
}

// setupRateLimiter connects to Redis and builds the login/register rate
// limit middleware. Rate limiting is optional: without a configured Redis
// address the auth endpoints run unthrottled.
func (m *APIModule) setupRateLimiter(ctx context.Context) (fiber.Handler, error) {
	if m.config.RedisAddr == "" {
		return nil, nil
	}

	m.redis = redis.NewClient(&redis.Options{
		Addr:         m.config.RedisAddr,
		Password:     m.config.RedisPassword,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := m.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", m.config.RedisAddr, err)
	}

	limiter := ratelimit.NewLimiter(m.redis, "ratelimit:auth:")
	log.Printf("[api] Auth rate limiting enabled (redis: %s)", m.config.RedisAddr)

	// 10 attempts per client IP per minute across login and register.
	return ratelimit.Handler(limiter, 10, time.Minute), nil
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes(authLimiter fiber.Handler) {
	handlers := NewHandlers(m.authContainer, m.taskContainer, m.authAdapter)

	// Health check endpoint
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	apiGroup := m.app.Group("/api")

	// Public auth routes
	authRoutes := apiGroup.Group("/auth")
	if authLimiter != nil {
		authRoutes.Use(authLimiter)
	}
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)

	// Protected routes (require authentication)
	protected := apiGroup.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))
	protected.Get("/profile", handlers.Profile)

	tasks := protected.Group("/tasks")
	tasks.Post("/", handlers.CreateTask)
	tasks.Get("/", handlers.ListTasks)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
