package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"stockgame/internal/config"
	"stockgame/internal/game"
	"stockgame/internal/schedule"
	"stockgame/internal/server"
)

func main() {
	portOverride := flag.Int("port", 0, "override server_port")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config.yaml: %v", err)
	}
	if *portOverride != 0 {
		cfg.ServerPort = *portOverride
	}

	// The game cannot run without a price schedule.
	stocks, err := schedule.Load(cfg.ScheduleFile)
	if err != nil {
		log.Fatalf("load price schedule: %v", err)
	}
	log.Printf("loaded %d stocks from %s", len(stocks), cfg.ScheduleFile)

	st := game.NewState(stocks, cfg.Game.InitialCash, cfg.Game.MaxPlayers, cfg.Game.WelcomeNews)
	hub := server.NewHub(st, cfg.AdminSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go hub.Run(ctx)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})
	r.Get("/ws", hub.ServeWS())
	serveStatic(r, cfg.WebDir)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	log.Printf("UI: http://localhost:%d (ws: /ws)", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("http server: %v", err)
	}
}

// serveStatic wires the browser UI: index without caching, everything
// else straight off disk.
func serveStatic(r chi.Router, webDir string) {
	abs, _ := filepath.Abs(webDir)
	log.Printf("serving static from %s", abs)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, req, filepath.Join(webDir, "index.html"))
	})
	r.Handle("/*", http.FileServer(http.Dir(webDir)))
}
