package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hearttiles/server/pkg/api"
	authproviders "github.com/hearttiles/server/pkg/auth/providers"
	"github.com/hearttiles/server/pkg/game"
	"github.com/hearttiles/server/pkg/handlers"
	"github.com/hearttiles/server/pkg/locks"
	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/network"
	"github.com/hearttiles/server/pkg/repositories"
	"github.com/hearttiles/server/pkg/rooms"
	"github.com/hearttiles/server/pkg/version"
	"github.com/hearttiles/server/pkg/workers"
)

func main() {
	wsPort := flag.Int("port", 8888, "Websocket port to listen on")
	apiPort := flag.Int("api-port", 8889, "HTTP API port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	storeType := flag.String("store", "memory", "Room store: memory, sqlite, postgres or redis")
	sqlitePath := flag.String("sqlite-path", "rooms.db", "Path to the sqlite database file")
	authType := flag.String("auth", "guest", "Auth provider: guest or firebase")
	certFile := flag.String("cert-file", "", "Path to the TLS certificate file")
	keyFile := flag.String("key-file", "", "Path to the TLS key file")
	flag.Parse()

	parsedLogLevel, err := log.ParseLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := newStore(ctx, *storeType, *sqlitePath)
	if err != nil {
		panic(fmt.Sprintf("Failed to create %s store: %v", *storeType, err))
	}
	defer store.Close(ctx)

	registry := rooms.NewRegistry()
	loaded, err := store.LoadAll(ctx)
	if err != nil {
		panic(fmt.Sprintf("Failed to load rooms: %v", err))
	}
	registry.Hydrate(loaded)
	log.Info("Loaded %d rooms from the %s store", len(loaded), *storeType)

	saveChan := make(chan workers.SaveRequest, 100)
	saveRoomWorker := workers.NewSaveRoomWorker(workers.NewSaveRoomWorkerOptions{
		Store:    store,
		SaveChan: saveChan,
	})
	go saveRoomWorker.Start(ctx)

	authProvider, err := newAuthProvider(ctx, *authType)
	if err != nil {
		panic(fmt.Sprintf("Failed to create %s auth provider: %v", *authType, err))
	}

	var tlsConfig *network.TLSConfig
	var apiTLSConfig *api.TLSConfig
	if *certFile != "" && *keyFile != "" {
		tlsConfig = &network.TLSConfig{CertFile: *certFile, KeyFile: *keyFile}
		apiTLSConfig = &api.TLSConfig{CertFile: *certFile, KeyFile: *keyFile}
	}

	hub := network.NewHub()
	dispatcher := handlers.NewDispatcher(handlers.NewDispatcherOptions{
		Registry: registry,
		Engine:   game.NewEngine(nil),
		Locks:    locks.NewManager(),
		Bus:      hub,
		Conns:    hub,
		Auth:     authProvider,
		SaveChan: saveChan,
	})
	go dispatcher.Run(ctx, hub.Events())

	wsServer := network.NewWSServer(network.NewWSServerOptions{
		Hub:  hub,
		Port: *wsPort,
		TLS:  tlsConfig,
	})
	go wsServer.Start(ctx)

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:     *apiPort,
		TLS:      apiTLSConfig,
		Registry: registry,
	})
	go apiServer.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
	cancel()
}

func newStore(ctx context.Context, storeType string, sqlitePath string) (repositories.Store, error) {
	switch storeType {
	case "memory":
		return repositories.NewMemoryStore(), nil
	case "sqlite":
		return repositories.NewSQLiteStore(ctx, sqlitePath)
	case "postgres":
		connStr := os.Getenv("DATABASE_URL")
		if connStr == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable must be set")
		}
		return repositories.NewPostgresStore(ctx, connStr)
	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		return repositories.NewRedisStore(ctx, addr)
	default:
		return nil, fmt.Errorf("unknown store type: %s", storeType)
	}
}

func newAuthProvider(ctx context.Context, authType string) (authproviders.AuthProvider, error) {
	switch authType {
	case "guest":
		return authproviders.NewGuestAuthProvider(), nil
	case "firebase":
		projectID := os.Getenv("FIREBASE_PROJECT_ID")
		if projectID == "" {
			return nil, fmt.Errorf("FIREBASE_PROJECT_ID environment variable must be set")
		}
		apiKey := os.Getenv("FIREBASE_API_KEY")
		return authproviders.NewFirebaseAuthProvider(ctx, projectID, apiKey)
	default:
		return nil, fmt.Errorf("unknown auth provider type: %s", authType)
	}
}
