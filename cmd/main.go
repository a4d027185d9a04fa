package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finedesk/internal/adapters/api"
	"finedesk/internal/adapters/sink"
	"finedesk/internal/config"
	"finedesk/internal/handlers"
	"finedesk/internal/repository"
	"finedesk/internal/repository/audit"
	"finedesk/internal/server"
	"finedesk/internal/services/batch"
	"finedesk/internal/services/fetcher"
	"finedesk/internal/services/screens"
	"finedesk/internal/transport/auth"
)

const screenIdle = 30 * time.Minute

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Init(setupCtx)
	defer cfg.Close(context.Background())
	fmt.Println("✅ All connections successfully established!")

	if bucket, ok := cfg.ArchiveBucket(); ok {
		if err := cfg.S3.EnsureBucket(setupCtx, bucket); err != nil {
			log.Fatalf("❌ Archive bucket %q: %v", bucket, err)
		}
	}
	if err := cfg.CheckConnections(setupCtx); err != nil {
		log.Fatalf("❌ Connection check failed: %v", err)
	}
	fmt.Println("🟢 All connections OK")

	client := api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout})
	auditLog := audit.NewLogger(cfg.Mongo)

	deps := screens.Deps{
		API:       client,
		Fetcher:   fetcher.NewService(client),
		Batch:     batch.NewDispatcher(auditLog),
		Audit:     auditLog,
		Sink:      sink.NewCompoundSink(cfg.PDFArchive, sink.NewFileSink(), sink.NewS3Sink(cfg.S3.Client)),
		NoticeTTL: cfg.NoticeTTL,
	}

	h := handlers.New(deps, auditLog, cfg.CheckConnections)
	sessions := repository.NewSessionRepository(cfg.Postgres)
	srv := server.NewServer(cfg.Port, h, auth.SessionMiddleware(sessions))

	go sweepScreens(runCtx, h.Screens)

	log.Printf("[SERVER] listening on :%s", cfg.Port)
	if err := srv.Run(runCtx); err != nil {
		log.Fatal(err)
	}
}

func sweepScreens(ctx context.Context, reg *handlers.Registry) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := reg.Sweep(screenIdle); n > 0 {
				log.Printf("[SCREENS] dropped %d idle sessions, %d left", n, reg.Len())
			}
		}
	}
}
