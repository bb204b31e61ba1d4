package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aimrange/internal/config"
	"aimrange/internal/db"
	"aimrange/internal/events"
	"aimrange/internal/ledger"
	"aimrange/internal/metrics"
	"aimrange/internal/sessions"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func Run() error {
	appCfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store ledger.Store = ledger.NewMemory()
	var database *db.DB

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		d, err := db.Connect(ctx, appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (keeping rounds in memory)\n", err)
		} else {
			defer d.Close()
			if err := d.Migrate(ctx); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			database = d
			store = d
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, keeping rounds in memory")
	}

	bus := events.NewBus()
	srv := New(appCfg.Tuning(), store, bus, sessions.Options{
		TickRate: appCfg.TickRate,
		Seed:     appCfg.Seed,
	})
	srv.DB = database
	srv.Encoding = appCfg.SnapshotEncoding

	writer := ledger.NewWriter(store, bus.RoundsEnded)
	writer.OnRecorded = srv.announce

	eg, ctx := errgroup.WithContext(ctx)

	httpSrv := &http.Server{
		Addr:        "0.0.0.0:" + appCfg.Port,
		Handler:     srv.Routes(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	eg.Go(func() error {
		return writer.Run(ctx)
	})
	eg.Go(func() error {
		return srv.Sessions.SweepStale(ctx)
	})
	eg.Go(func() error {
		log.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("GET /api/modes", s.handleModes)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /api/players/{id}", s.handlePlayer)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
