package chat

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mounish67/mindmate-ai-bot/internal/service/dialogue"
	"github.com/mounish67/mindmate-ai-bot/pkg/utils"
)

// WebSocketHandler serves the realtime chat transport. Each connection is
// bound to one conversational identity taken from the URL.
type WebSocketHandler struct {
	dialogueSvc *dialogue.Service
	upgrader    websocket.Upgrader
}

// NewWebSocketHandler creates the websocket chat handler.
func NewWebSocketHandler(dialogueSvc *dialogue.Service) *WebSocketHandler {
	return &WebSocketHandler{
		dialogueSvc: dialogueSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes mounts the websocket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{identity}", h.handleWebSocket)
}

type wsInbound struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type wsOutbound struct {
	Reply     string `json:"reply"`
	Type      string `json:"type"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")
	if identity == "" {
		utils.RespondError(w, http.StatusBadRequest, "identity is required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for identity=%s: %v", identity, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for identity=%s", identity)

	for {
		var inbound wsInbound
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed for identity=%s: %v", identity, err)
			}
			return
		}

		reply, err := h.dialogueSvc.HandleMessage(r.Context(), identity, inbound.Message)
		outbound := wsOutbound{Timestamp: time.Now().UnixMilli()}
		if err != nil {
			outbound.Error = err.Error()
		} else {
			outbound.Reply = reply.Reply
			outbound.Type = string(reply.Type)
		}

		if err := conn.WriteJSON(outbound); err != nil {
			log.Printf("[ws] write failed for identity=%s: %v", identity, err)
			return
		}
	}
}
