package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"stocktake/frontend/login"
	"stocktake/infrastructure/config"
	"stocktake/infrastructure/rbac"
	"stocktake/infrastructure/sqlite"
)

// Seeds one manager and one worker account so a fresh install is usable.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sqlite.OpenDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	managerPassword := getenv("MANAGER_PASSWORD", "Manager123!Stock")
	if err := login.UpsertUserPasswordHash(context.Background(), db, "manager", rbac.RoleManager, managerPassword); err != nil {
		log.Fatalf("seed manager: %v", err)
	}

	workerPassword := getenv("WORKER_PASSWORD", "Worker123!Stock")
	if err := login.UpsertUserPasswordHash(context.Background(), db, "worker", rbac.RoleWorker, workerPassword); err != nil {
		log.Fatalf("seed worker: %v", err)
	}

	fmt.Println("seeded users: manager, worker")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
