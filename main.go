package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "transferhub/internal/config"
	router "transferhub/internal/http"
	"transferhub/internal/http/handlers"
	"transferhub/internal/kvstore"
	"transferhub/internal/notify"
	"transferhub/internal/repositories"
	"transferhub/internal/services"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Reminder timestamps live in redis when available; otherwise the
	// in-memory store keeps a single node honest until restart.
	if client, err := intconfig.NewRedisClient(ctx, env); err != nil {
		log.Printf("redis unavailable, using in-memory reminder store: %v", err)
	} else {
		handlers.SetReminderStore(kvstore.NewRedis(client, "transferhub:"))
		defer client.Close()
	}

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	go runReminderLoop(ctx, env)

	<-ctx.Done()

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}

// runReminderLoop periodically nudges every active supplier about paid,
// approved bookings that still lack a driver.
func runReminderLoop(ctx context.Context, env intconfig.Env) {
	var m notify.Mailer = notify.ConsoleMailer{}
	if env.SMTPHost != "" {
		m = notify.SMTPMailer{Host: env.SMTPHost, Port: env.SMTPPort, From: env.SMTPFrom}
	}

	ticker := time.NewTicker(env.ReminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			suppliers, err := repositories.UserRepository{}.ListByRole("supplier")
			if err != nil {
				log.Printf("reminder loop: listing suppliers failed: %v", err)
				continue
			}

			svc := &services.ReminderService{
				Store:  handlers.ReminderStore(),
				Mailer: m,
			}
			for _, s := range suppliers {
				if _, err := svc.RunForSupplier(ctx, s.ID, s.Email); err != nil {
					log.Printf("reminder loop: supplier %d: %v", s.ID, err)
				}
			}
		}
	}
}
