package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xifan2333/2transcript/artifact"
	"github.com/xifan2333/2transcript/captions"
	"github.com/xifan2333/2transcript/config"
	"github.com/xifan2333/2transcript/pipeline"
	"github.com/xifan2333/2transcript/punct"
	"github.com/xifan2333/2transcript/server"

	// Register providers.
	_ "github.com/xifan2333/2transcript/captions/providers/youtube"
	_ "github.com/xifan2333/2transcript/punct/providers/fullstop"
	_ "github.com/xifan2333/2transcript/punct/providers/openai"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No .env file found, using system environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG"))
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	captionProvider, err := captions.Get(cfg.Captions.Provider)
	if err != nil {
		log.Fatalf("[ERROR] captions provider: %v", err)
	}
	fetcher := captions.NewFetcher(captionProvider, captions.RetryConfig{
		MaxTries:        cfg.Captions.MaxTries,
		InitialInterval: cfg.Captions.InitialBackoff.Std(),
		MaxInterval:     cfg.Captions.MaxBackoff.Std(),
	})

	var restorer *punct.Restorer
	if cfg.Punct.Provider != "" {
		restorer, err = punct.NewRestorer(cfg.Punct.Provider, &punct.Options{
			BaseURL:  cfg.Punct.BaseURL,
			APIKey:   cfg.APIKey(),
			Model:    cfg.Punct.Model,
			Language: cfg.Captions.Language,
		})
		if err != nil {
			log.Fatalf("[ERROR] punctuation provider: %v", err)
		}
		restorer.MaxChunkLen = cfg.Punct.MaxChunkLen
	} else {
		log.Println("[WARN] no punctuation provider configured; punctuated requests will degrade to raw text")
	}

	store, err := artifact.NewStore(cfg.Storage.Root, cfg.Storage.Retention.Std())
	if err != nil {
		log.Fatalf("[ERROR] artifact store: %v", err)
	}
	defer store.Close()

	stopJanitor := make(chan struct{})
	go store.Janitor(cfg.Storage.SweepInterval.Std(), stopJanitor)
	defer close(stopJanitor)

	pipe := pipeline.New(fetcher, restorer, store)
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.New(pipe, store).Routes(),
	}

	// Root context that cancels on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] shutdown: %v", err)
		}
	}()

	log.Printf("[INFO] transcript service listening on %s (captions: %s, punctuation: %s)",
		cfg.Listen, cfg.Captions.Provider, punctName(cfg.Punct.Provider))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[ERROR] %v", err)
	}
	log.Println("[INFO] server stopped")
}

func punctName(name string) string {
	if name == "" {
		return "disabled"
	}
	return name
}
