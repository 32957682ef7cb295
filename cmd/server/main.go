package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	httpadapter "github.com/asharavesh/Hashing-Techniques/internal/adapter/httpadapter"
	"github.com/asharavesh/Hashing-Techniques/internal/adapter/persistence"
	"github.com/asharavesh/Hashing-Techniques/internal/adapter/postgresql"
	"github.com/asharavesh/Hashing-Techniques/internal/adapter/tcp"
	"github.com/asharavesh/Hashing-Techniques/internal/core/ports"
	"github.com/asharavesh/Hashing-Techniques/internal/core/services"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
	wb "github.com/asharavesh/Hashing-Techniques/internal/persistence"
)

func main() {
	// a missing .env is fine; real env vars still apply
	envErr := godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logCloser := setupLogging(opts.LogLevel, opts.LogFile)
	if envErr == nil {
		log.Info("[INIT] Loaded environment variables from .env")
	}

	if err := run(opts); err != nil {
		log.Errorf("Shutdown error: %v", err)
		if logCloser != nil {
			logCloser.Close()
		}
		os.Exit(1)
	}

	log.Info("Bye!")
	if logCloser != nil {
		logCloser.Close()
	}
}

func run(opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ============================================================
	// 1. Hash table registry
	// ============================================================
	registry, err := engine.NewRegistry(opts.Size, opts.MaxCapacity)
	if err != nil {
		return err
	}
	log.Infof("[INIT] Tables ready: capacity=%d max=%d", opts.Size, opts.MaxCapacity)

	// ============================================================
	// 2. Journal
	// ============================================================
	repo, sink, closeJournal, err := openJournal(ctx, opts)
	if err != nil {
		return err
	}
	history := services.NewHistoryService(repo, sink)
	registry.Subscribe(history)

	// ============================================================
	// 3. Live feed
	// ============================================================
	hub := httpadapter.NewHub(opts.CORSOrigins)
	go hub.Run(ctx)
	registry.Subscribe(hub)

	// ============================================================
	// 4. HTTP server
	// ============================================================
	srv := httpadapter.NewServer(registry, history, hub, httpadapter.Config{
		CORSOrigins:   opts.CORSOrigins,
		EnableMetrics: !opts.NoMetrics,
	})

	httpSrv := &http.Server{
		Addr:         opts.listenAddr(),
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Infof("[HTTP] Server running on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// ============================================================
	// 5. Optional TCP line protocol
	// ============================================================
	var tcpSrv *tcp.Server
	if opts.TCPAddr != "" {
		tcpSrv = tcp.NewServer(tcp.NewDispatcher(registry))
		go func() {
			if err := tcpSrv.ListenAndServe(opts.TCPAddr); err != nil {
				errCh <- err
			}
		}()
	}

	// ============================================================
	// 6. Graceful shutdown
	// ============================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var result *multierror.Error
	select {
	case sig := <-quit:
		log.Noticef("Received %s, shutting down...", sig)
	case err := <-errCh:
		log.Errorf("Listen error: %v", err)
		result = multierror.Append(result, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), opts.Graceful)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, err)
	}
	if tcpSrv != nil {
		if err := tcpSrv.Shutdown(shutdownCtx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	cancel()
	if err := closeJournal(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// openJournal picks the journal backend. Postgres writes go through a
// write-behind buffer; the memory journal records synchronously.
func openJournal(ctx context.Context, opts Options) (ports.JournalRepository, ports.RecordSink, func() error, error) {
	switch opts.Journal {
	case "postgres":
		pool, err := postgresql.Connect(ctx, opts.PostgresURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := persistence.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}

		repo := persistence.NewJournalRepo(pool)
		buf := wb.NewWriteBehindBuffer(opts.WriteBuffer, opts.FlushInterval, repo)
		buf.Start(ctx)
		log.Info("[INIT] Journal: postgres")

		closeFn := func() error {
			err := buf.Close()
			pool.Close()
			return err
		}
		return repo, buf, closeFn, nil

	case "none":
		log.Info("[INIT] Journal: disabled")
		j := persistence.NewNoopJournal()
		return j, persistence.NoopJournal{}, j.Close, nil

	default:
		log.Infof("[INIT] Journal: memory (%d per method)", opts.JournalSize)
		j := persistence.NewMemoryJournal(opts.JournalSize)
		return j, j, j.Close, nil
	}
}
