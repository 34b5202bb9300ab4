package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stocktake/infrastructure/audit"
	"stocktake/infrastructure/cache"
	"stocktake/infrastructure/config"
	httpserver "stocktake/infrastructure/http"
	"stocktake/infrastructure/rbac"
	"stocktake/infrastructure/scheduler"
	"stocktake/infrastructure/session"
	"stocktake/infrastructure/sqlite"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	session.SetTTLHours(cfg.Session.TTLHours)

	db, err := sqlite.OpenDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()
	rbacCache := cache.NewRbacRolesCache()
	rbacSvc := rbac.New(rbacCache)
	auditSvc := audit.NewService()

	sched := scheduler.New(db)
	if err := sched.Start(cfg.Notifications.RefreshSpec); err != nil {
		log.Fatalf("start scheduler: %v", err)
	}

	server := httpserver.NewServer(cfg.Server.Addr, db, sessionCache, userCache, rbacSvc, rbacCache, auditSvc)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("stocktake listening on %s", cfg.Server.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	sched.Stop()
	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
