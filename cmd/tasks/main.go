package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasks/internal/server"
	"tasks/internal/service"
	db "tasks/repository/db"
	inmemory "tasks/repository/inmemory"
)

type taskAPI interface {
	Start() error
	Shutdown(ctx context.Context) error
}

func main() {
	log.Println("Task list service starting...")

	cfg := server.ReadConfig()

	if err := RunMigrations(cfg); err != nil {
		log.Printf("[WARN] Failed to apply migrations: %v", err)
	} else {
		log.Println("[SUCCESS] Migrations applied")
	}

	userRepo, listRepo, taskRepo, closeStorage := InitializeRepositories(cfg)
	defer closeStorage()

	api := server.NewTaskAPI(
		cfg,
		service.NewUserService(userRepo),
		service.NewListService(listRepo),
		service.NewTaskService(taskRepo),
	)
	if api == nil {
		log.Fatal("[ERROR] Failed to initialize API")
	}

	sigChan, serverErr := StartServer(api, cfg)

	select {
	case sig := <-sigChan:
		log.Printf("[INFO] Received signal %v, starting graceful shutdown...", sig)

		if err := HandleShutdown(api, sig); err != nil {
			log.Printf("[ERROR] Graceful shutdown failed: %v", err)
		} else {
			log.Println("[SUCCESS] Graceful shutdown complete")
		}

	case err := <-serverErr:
		log.Printf("[ERROR] Server error: %v", err)
	}

	log.Println("Service stopped")
}

// RunMigrations applies the SQL migrations from the configured directory.
func RunMigrations(cfg *server.Config) error {
	return db.Migration(cfg.DBStr, cfg.MigratePath)
}

// InitializeRepositories connects to Postgres and falls back to the
// in-memory storage when the database is unreachable. The returned
// closer releases the connection pool if one was opened.
func InitializeRepositories(cfg *server.Config) (service.UserRepository, service.ListRepository, service.TaskRepository, func()) {
	dbStorage, err := db.NewStorage(cfg.DBStr)
	if err != nil {
		log.Println("[WARN] Database unreachable, falling back to in-memory storage:", err)
		inmem := inmemory.NewStorage()
		return inmem, inmem, inmem, func() {}
	}

	log.Println("[SUCCESS] Connected to the database")
	return dbStorage, dbStorage, dbStorage, dbStorage.Close
}

// StartServer launches the HTTP server in the background and returns the
// signal and server-error channels main selects on.
func StartServer(api taskAPI, cfg *server.Config) (chan os.Signal, chan error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Service listening on %s:%d", cfg.Addr, cfg.Port)
		if err := api.Start(); err != nil {
			serverErr <- err
		}
	}()

	return sigChan, serverErr
}

// HandleShutdown stops the API, giving in-flight requests 30 seconds to
// finish.
func HandleShutdown(api taskAPI, _ os.Signal) error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	return api.Shutdown(shutdownCtx)
}
