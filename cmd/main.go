package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oakfield/doortrack/internal/adapter/file"
	"github.com/oakfield/doortrack/internal/adapter/logger"
	"github.com/oakfield/doortrack/internal/adapter/postgres"
	"github.com/oakfield/doortrack/internal/adapter/rabbitmq"
	"github.com/oakfield/doortrack/internal/adapter/redis"
	"github.com/oakfield/doortrack/internal/adapter/seed"
	"github.com/oakfield/doortrack/internal/app/intake"
	"github.com/oakfield/doortrack/internal/app/scan"
	"github.com/oakfield/doortrack/internal/app/tracking"
	"github.com/oakfield/doortrack/internal/config"
	"github.com/oakfield/doortrack/internal/interfaces"
	"github.com/oakfield/doortrack/internal/store"

	httpAdapter "github.com/oakfield/doortrack/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "server", "Run mode: server, export")
	port := flag.Int("port", 3000, "HTTP port (server mode)")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	exportPath := flag.String("out", "test.json", "Output file (export mode)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	lgr := logger.New("doortrack-" + *mode)

	blob, closeBlob, err := openBlobStore(ctx, cfg, lgr)
	if err != nil {
		log.Fatalf("Failed to open storage backend: %v", err)
	}
	defer closeBlob()

	orders := store.New(blob, lgr)
	if err := orders.Load(ctx); err != nil {
		// Not fatal: the session runs on an in-memory store.
		lgr.Error("load_failed", "Could not load persisted dataset, starting empty", "startup", nil, err)
	}

	switch *mode {
	case "server":
		seedIfEmpty(ctx, cfg, orders, lgr)
		runServer(ctx, cfg, orders, lgr, *port)

	case "export":
		if err := file.WriteExport(*exportPath, orders.Snapshot()); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		lgr.Info("export_done", fmt.Sprintf("Dataset exported to %s", *exportPath), "export", map[string]interface{}{
			"orders": len(orders.Snapshot().Orders),
		})

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config, lgr logger.Logger) (interfaces.BlobStore, func(), error) {
	switch cfg.Storage.Backend {
	case "file":
		return file.New(cfg.Storage.File.Path), func() {}, nil

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.Storage.Database)
		if err != nil {
			return nil, nil, err
		}
		repo, err := postgres.NewSnapshotRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		lgr.Info("db_connected", "Connected to PostgreSQL", "startup", map[string]interface{}{
			"host": cfg.Storage.Database.Host,
			"db":   cfg.Storage.Database.Database,
		})
		return repo, db.Close, nil

	case "redis":
		blob, err := redis.Connect(ctx, cfg.Storage.Redis)
		if err != nil {
			return nil, nil, err
		}
		lgr.Info("redis_connected", "Connected to Redis", "startup", map[string]interface{}{
			"key": cfg.Storage.Redis.Key,
		})
		return blob, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// seedIfEmpty does the one-shot bulk load when the slot held nothing.
// Any failure is logged and the store stays empty.
func seedIfEmpty(ctx context.Context, cfg *config.Config, orders *store.Store, lgr logger.Logger) {
	if cfg.Seed.URL == "" || len(orders.All()) > 0 {
		return
	}
	ds, err := seed.NewLoader(cfg.Seed.URL).Fetch(ctx)
	if err != nil {
		lgr.Error("seed_failed", "Bulk load failed, starting with empty store", "startup", map[string]interface{}{
			"url": cfg.Seed.URL,
		}, err)
		return
	}
	orders.Seed(ctx, ds)
	lgr.Info("seed_loaded", "Bulk load complete", "startup", map[string]interface{}{
		"orders": len(orders.All()),
	})
}

func runServer(ctx context.Context, cfg *config.Config, orders *store.Store, lgr logger.Logger, port int) {
	var publisher interfaces.MessagePublisher
	if cfg.RabbitMQ != nil {
		mqConn, err := rabbitmq.Connect(*cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer mqConn.Close()
		publisher = rabbitmq.NewPublisher(mqConn)

		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
	}

	scanService := scan.NewService(orders, publisher, lgr)
	intakeService := intake.NewService(orders, lgr)
	trackingService := tracking.NewService(orders, lgr)

	orderHandler := httpAdapter.NewOrderHandler(scanService, intakeService, lgr)
	trackingHandler := httpAdapter.NewTrackingHandler(trackingService, orders, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/scans", orderHandler.SubmitScan)
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			orderHandler.CreateOrder(w, r)
			return
		}
		trackingHandler.ListOrders(w, r)
	})
	mux.HandleFunc("/orders/detail", trackingHandler.OrderDetail)
	mux.HandleFunc("/stations", trackingHandler.Stations)
	mux.HandleFunc("/export", trackingHandler.Export)

	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("doortrack started on port %d", port), "startup", map[string]interface{}{
		"port":    port,
		"storage": cfg.Storage.Backend,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}
