// Package stream delivers dialogue replies over Server-Sent Events so the
// frontend can reuse one streaming code path for every transport.
package stream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mounish67/mindmate-ai-bot/internal/service/dialogue"
	"github.com/mounish67/mindmate-ai-bot/pkg/utils"
)

// Handler serves dialogue turns as SSE event sequences.
type Handler struct {
	dialogueSvc *dialogue.Service
}

// New creates a stream handler.
func New(dialogueSvc *dialogue.Service) *Handler {
	return &Handler{dialogueSvc: dialogueSvc}
}

// StreamResponse is one SSE frame.
type StreamResponse struct {
	Event    string `json:"event"`
	Content  string `json:"content,omitempty"`
	Type     string `json:"type,omitempty"`
	Identity string `json:"identity,omitempty"`
	Finished bool   `json:"finished,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleStreamRequest processes one utterance and emits start / message / end
// frames for it.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, identity, message string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:    "start",
		Identity: identity,
	})

	reply, err := h.dialogueSvc.HandleMessage(ctx, identity, message)
	if err != nil {
		utils.SendSSEChunk(w, flusher, StreamResponse{Event: "error", Error: err.Error()})
		return err
	}

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:    "message",
		Identity: identity,
		Content:  reply.Reply,
		Type:     string(reply.Type),
	})

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:    "end",
		Identity: identity,
		Finished: true,
	})

	return nil
}
