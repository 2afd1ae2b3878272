package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopadmin/internal/api"
	"shopadmin/internal/config"
	"shopadmin/internal/console"
	"shopadmin/internal/session"

	_ "shopadmin/docs"
)

// @title shopadmin console API
// @version 1.0
// @description Locally served admin console for the DropShop store backend.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sess := session.NewFile(cfg.TokenFile)
	sess.OnExpired(func() {
		log.Printf("session expired, login required")
	})

	backend := api.New(cfg.APIBaseURL, sess, api.WithTimeout(cfg.APITimeout))
	ml := api.NewML(cfg.MLBaseURL, api.WithMLTimeout(cfg.MLTimeout))

	srv := console.NewServer(sess, backend, ml)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("console listening on %s (backend %s)", httpServer.Addr, cfg.APIBaseURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
