package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	chatmodel "github.com/mounish67/mindmate-ai-bot/internal/model/chat"
	"github.com/mounish67/mindmate-ai-bot/internal/model/resource"
	"github.com/mounish67/mindmate-ai-bot/internal/service/dialogue"
	"github.com/mounish67/mindmate-ai-bot/internal/service/session"
	"github.com/mounish67/mindmate-ai-bot/pkg/utils"
)

// identityHeader lets clients pin their conversational identity across
// requests; a missing identity gets a fresh one minted per request.
const identityHeader = "X-Session-Identity"

// Handler exposes the dialogue engine over plain HTTP.
type Handler struct {
	dialogueSvc *dialogue.Service
	sessions    *session.Store
	resources   resource.Store
}

// New creates the chat handler.
func New(dialogueSvc *dialogue.Service, sessions *session.Store, resources resource.Store) *Handler {
	return &Handler{
		dialogueSvc: dialogueSvc,
		sessions:    sessions,
		resources:   resources,
	}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/reset", h.handleReset)
	r.Get("/resources/{category}", h.handleResources)
}

type chatRequest struct {
	Identity string `json:"identity"`
	Message  string `json:"message"`
}

type chatResponse struct {
	Identity string              `json:"identity"`
	Reply    string              `json:"reply"`
	Type     chatmodel.ReplyType `json:"type"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := resolveIdentity(r, payload.Identity)

	reply, err := h.dialogueSvc.HandleMessage(r.Context(), identity, payload.Message)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{
		Identity: identity,
		Reply:    reply.Reply,
		Type:     reply.Type,
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := resolveIdentity(r, payload.Identity)
	if err := h.sessions.Reset(r.Context(), identity); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"identity": identity,
		"status":   "reset",
	})
}

func (h *Handler) handleResources(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	items := h.resources.Lookup(category)
	if len(items) == 0 {
		utils.RespondError(w, http.StatusNotFound, "unknown resource category")
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func resolveIdentity(r *http.Request, fromBody string) string {
	if identity := strings.TrimSpace(fromBody); identity != "" {
		return identity
	}
	if identity := strings.TrimSpace(r.Header.Get(identityHeader)); identity != "" {
		return identity
	}
	return uuid.NewString()
}
