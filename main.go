package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Community-Programmer/task-manager/modules/api"
	"github.com/Community-Programmer/task-manager/modules/auth"
	"github.com/Community-Programmer/task-manager/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager API ===")

	cfg := loadConfig()

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule(cfg.Auth)) // Identity service (users, tokens)
	app.Register(task.NewModule(cfg.Task)) // Task store service
	app.Register(api.NewModule(cfg.API))   // HTTP surface, depends on auth + task

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg.API.Addr)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// appConfig is assembled once at startup from the environment and handed to
// the module constructors. Modules never read the environment themselves, so
// the signing secret and database path have a single, immutable source.
type appConfig struct {
	Auth auth.Config
	Task task.Config
	API  api.Config
}

func loadConfig() appConfig {
	dbPath := os.Getenv("TASK_MANAGER_DB_PATH")
	if dbPath == "" {
		dbPath = "task_manager.db"
	}

	jwtConfig := auth.DefaultJWTConfig()
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		jwtConfig.SecretKey = secret
	} else {
		log.Println("WARNING: JWT_SECRET not set, using insecure default secret")
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	return appConfig{
		Auth: auth.Config{
			DBPath: dbPath,
			JWT:    jwtConfig,
		},
		Task: task.Config{
			DBPath: dbPath,
		},
		API: api.Config{
			Addr:          addr,
			AllowOrigins:  os.Getenv("CLIENT_URL"),
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
		},
	}
}

func printStartupInfo(addr string) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost%s):", addr)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/auth/register  - Register a new user")
	log.Println("  POST   /api/auth/login     - Login and get a session token")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/profile        - Get current user profile")
	log.Println("  POST   /api/tasks          - Create a task")
	log.Println("  GET    /api/tasks          - List your tasks")
	log.Println("  GET    /api/tasks/:id      - Get one of your tasks")
	log.Println("  PUT    /api/tasks/:id      - Update one of your tasks")
	log.Println("  DELETE /api/tasks/:id      - Delete one of your tasks")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
