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

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/mounish67/mindmate-ai-bot/internal/config"
	"github.com/mounish67/mindmate-ai-bot/internal/handler"
	"github.com/mounish67/mindmate-ai-bot/internal/model/resource"
	"github.com/mounish67/mindmate-ai-bot/internal/service/ai"
	"github.com/mounish67/mindmate-ai-bot/internal/service/dialogue"
	emotionservice "github.com/mounish67/mindmate-ai-bot/internal/service/emotion"
	"github.com/mounish67/mindmate-ai-bot/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	resourceStore := resource.NewMemoryStore(resource.Seed())
	sessionStore := session.NewStore(cfg.Chat.WindowCapacity)

	providers, primaryModel := buildProviders(ctx, cfg)
	chain := ai.NewChain(cfg.Chat.ProviderTimeout, ai.DefaultFallbacks(), providers...)

	emotionSvc, err := emotionservice.NewService(ctx, primaryModel, emotionservice.Config{
		Enabled: cfg.Chat.EmotionLLMEnabled,
	})
	if err != nil {
		log.Fatalf("failed to initialize emotion classifier: %v", err)
	}
	if emotionSvc.Enabled() {
		log.Println("LLM emotion classifier enabled")
	} else {
		log.Println("emotion classification using keyword heuristics")
	}

	dialogueSvc := dialogue.NewService(sessionStore, emotionSvc, chain, resourceStore, cfg.Chat.EmotionHistoryLimit)

	router := handler.NewRouter(dialogueSvc, sessionStore, resourceStore)

	startServer(ctx, cfg.Server, router)
}

// buildProviders assembles the reply-provider chain in priority order. A
// provider with missing credentials stays in the chain but is skipped on
// every request; the fallback table keeps the service answering even with no
// provider configured at all.
func buildProviders(ctx context.Context, cfg *config.Config) ([]ai.Provider, model.ChatModel) {
	var providers []ai.Provider
	var primaryModel model.ChatModel

	primary, err := ai.NewModelProvider(ctx, cfg.AI)
	if err != nil {
		log.Printf("warning: failed to initialize primary provider: %v", err)
	} else {
		providers = append(providers, primary)
		if primary.Ready() {
			log.Printf("provider %s initialized", primary.Name())
			primaryModel = primary.ChatModel()
		} else {
			log.Printf("provider %s has no credentials, it will be skipped", primary.Name())
		}
	}

	backup, err := ai.NewModelProvider(ctx, cfg.Backup)
	if err != nil {
		log.Printf("warning: failed to initialize backup provider: %v", err)
	} else {
		providers = append(providers, backup)
		if backup.Ready() {
			log.Printf("provider %s initialized", backup.Name())
		}
	}

	return providers, primaryModel
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("MindMate backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
