package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/mounish67/mindmate-ai-bot/internal/handler/chat"
	"github.com/mounish67/mindmate-ai-bot/internal/handler/stream"
	middlewarePkg "github.com/mounish67/mindmate-ai-bot/internal/middleware"
	"github.com/mounish67/mindmate-ai-bot/internal/model/resource"
	"github.com/mounish67/mindmate-ai-bot/internal/service/dialogue"
	"github.com/mounish67/mindmate-ai-bot/internal/service/session"
	"github.com/mounish67/mindmate-ai-bot/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(dialogueSvc *dialogue.Service, sessions *session.Store, resources resource.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chathandler.New(dialogueSvc, sessions, resources)
	wsHandler := chathandler.NewWebSocketHandler(dialogueSvc)
	streamHandler := stream.New(dialogueSvc)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterWebSocketRoutes(api)

		api.Get("/stream/{identity}", func(w http.ResponseWriter, r *http.Request) {
			identity := chi.URLParam(r, "identity")
			message := r.URL.Query().Get("message")

			if message == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, identity, message); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}
