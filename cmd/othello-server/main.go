// Package main runs the mini-othello API server and, optionally, the browser UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/cmd/othello-server/cli"
	"github.com/devilangelzero54-cmd/mini-othello/internal/ai"
	"github.com/devilangelzero54-cmd/mini-othello/internal/config"
	"github.com/devilangelzero54-cmd/mini-othello/internal/game"
	"github.com/devilangelzero54-cmd/mini-othello/internal/processor"
	"github.com/devilangelzero54-cmd/mini-othello/internal/service"
	"github.com/devilangelzero54-cmd/mini-othello/internal/storage"
	"github.com/devilangelzero54-cmd/mini-othello/internal/transport/http"
	"github.com/devilangelzero54-cmd/mini-othello/internal/webserver"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	cfg, err := loadConfig(configPathFromArgs(os.Args[1:]))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		_           = flag.String("config", "", "Config file path (default: XDG config dir)")
		apiHost     = flag.String("api-host", cfg.Server.Host, "API server host")
		apiPort     = flag.Int("api-port", cfg.Server.Port, "API server port")
		dev         = flag.Bool("dev", cfg.Server.Dev, "Development mode (relaxed rate limits)")
		storagePath = flag.String("storage-path", cfg.Storage.Path, "Path to SQLite archive (disabled if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
		thinkDelay  = flag.Duration("think-delay", cfg.ThinkDelay(), "Pause before the computer moves")
		passDelay   = flag.Duration("pass-delay", cfg.PassDelay(), "Extra pause after a pass")
		seed        = flag.Uint64("seed", cfg.AI.Seed, "AI tie-break seed (0 seeds from the clock)")

		serve   = flag.Bool("serve", cfg.Web.Enabled, "Enable web UI server")
		webHost = flag.String("web-host", cfg.Web.Host, "Web UI server host")
		webPort = flag.Int("web-port", cfg.Web.Port, "Web UI server port")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}
	if *thinkDelay < 0 || *passDelay < 0 {
		log.Fatal("Error: delays must not be negative")
	}

	if *pidPath != "" {
		pf, err := acquirePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer pf.Release()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// 1. Initialize Storage (optional)
	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing game archive at: %s", *storagePath)
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Game archive disabled (use -storage-path to enable)")
	}

	// 2. Initialize the Service with optional storage; it closes the store on shutdown
	svc := service.New(store, service.Options{
		MaxSessions: cfg.Session.MaxSessions,
		IdleTTL:     cfg.IdleTTL(),
	})

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go svc.RunCleanupJob(cleanupCtx, service.CleanupJobInterval)

	// 3. Initialize the Processor, injecting the service
	proc := processor.New(svc, processor.Options{
		ThinkDelay: *thinkDelay,
		PassDelay:  *passDelay,
		Selector:   ai.NewSelector(*seed),
	})
	if *dev {
		proc.OnComputerTurnReady(func(gameID string, st game.State) {
			log.Printf("Game %s round %d: computer to move (v%d, %d candidates)",
				gameID, st.Round, st.Version, len(st.ValidMoves))
		})
	}

	// 4. Initialize the Fiber App/HTTP Handler, injecting processor and service
	app := http.NewFiberApp(proc, svc, *dev)

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Othello API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		if *dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		log.Printf("Pacing: think %v, pass %v", *thinkDelay, *passDelay)
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// 5. Start Web UI server (optional)
	var web *webserver.Server
	if *serve {
		apiURL := fmt.Sprintf("http://%s", apiAddr)
		if web, err = webserver.New(apiURL); err != nil {
			log.Fatalf("Failed to build web UI: %v", err)
		}

		go func() {
			log.Printf("Web UI Listening on: http://%s:%d", *webHost, *webPort)
			log.Printf("Web UI API target: %s", apiURL)

			if err := web.Listen(*webHost, *webPort); err != nil {
				log.Printf("Web UI server error: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if web != nil {
		if err = web.Shutdown(gracefulShutdownTimeout); err != nil {
			log.Printf("Web UI forced to shutdown: %v", err)
		}
	}

	if err = proc.Close(); err != nil {
		log.Printf("Processor close error: %v", err)
	}

	cleanupCancel()

	// Releases waiters and flushes the archive
	if err = svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Servers exited")
}

// loadConfig reads path, or the XDG config when path is empty. A broken XDG
// file is reported and defaults are used; a broken explicit file is fatal.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.InitConfig()
	if err == nil {
		return cfg, nil
	}
	log.Printf("Warning: %v, using defaults", err)
	return config.Load("")
}

// configPathFromArgs finds -config ahead of flag parsing, since the file
// supplies the flag defaults
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
