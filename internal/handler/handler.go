package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vitormoschetta/rameezbot/internal/model"
	"github.com/vitormoschetta/rameezbot/internal/server"
	"github.com/vitormoschetta/rameezbot/internal/service"
)

const maxBodyBytes = 64 << 10

// ChatService é o que os handlers precisam do gateway de chat
type ChatService interface {
	HandleChat(ctx context.Context, message string) (service.Reply, error)
}

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	chat             ChatService
	botName          string
	geminiConfigured bool
	logger           *slog.Logger
}

// NewHandler cria uma nova instância do Handler a partir do servidor
func NewHandler(srv *server.Server) *Handler {
	return New(srv.ChatService, srv.Persona.Name, srv.Config.GenerationEnabled(), srv.Logger)
}

// New cria o Handler com dependências explícitas. geminiConfigured reflete a
// presença da credencial, mesmo que o modelo não tenha subido.
func New(chat ChatService, botName string, geminiConfigured bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		chat:             chat,
		botName:          botName,
		geminiConfigured: geminiConfigured,
		logger:           logger.With("component", "handler"),
	}
}

// HandleRoot retorna informações sobre o serviço
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.RootResponse{
		Status:        h.botName + " is running!",
		GeminiEnabled: h.geminiConfigured,
		Message:       "Send POST requests to /chat with JSON body: {'message': 'your message'}",
	})
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	apiStatus := "not configured"
	if h.geminiConfigured {
		apiStatus = "configured"
	}
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:    "healthy",
		GeminiAPI: apiStatus,
	})
}

// HandleChat processa a mensagem e responde com o texto gerado ou de fallback
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req model.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "invalid chat payload", "error", err)
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Detail: model.DetailInvalidJSON})
		return
	}

	reply, err := h.chat.HandleChat(r.Context(), req.Message)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Detail: model.DetailEmptyMessage})
		return
	case errors.Is(err, service.ErrMessageTooLong):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Detail: model.DetailMessageTooLong})
		return
	default:
		h.logger.ErrorContext(r.Context(), "chat error", "error", err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Detail: model.DetailInternal})
		return
	}

	h.logger.InfoContext(r.Context(), "chat reply sent", "source", reply.Source, "reply_length", len(reply.Text))
	writeJSON(w, http.StatusOK, model.ChatResponse{Reply: reply.Text})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
