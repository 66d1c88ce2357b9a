package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/rameezbot/internal/classifier"
	"github.com/vitormoschetta/rameezbot/internal/config"
	"github.com/vitormoschetta/rameezbot/internal/generation"
	"github.com/vitormoschetta/rameezbot/internal/logging"
	"github.com/vitormoschetta/rameezbot/internal/persona"
	"github.com/vitormoschetta/rameezbot/internal/service"
)

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	Config      *config.Config
	Persona     persona.Persona
	ChatService *service.ChatService
	MCPServer   *mcp.Server
	Logger      *slog.Logger
	Router      chi.Router
}

// NewServer cria uma nova instância do servidor. Sem GEMINI_API_KEY o serviço
// sobe normalmente e responde apenas com o fallback.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p, err := persona.Load(cfg.PersonaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load persona: %w", err)
	}

	var generator generation.Generator
	if cfg.GenerationEnabled() {
		httpClient := &http.Client{
			Transport: &LoggingTransport{
				Base:   http.DefaultTransport,
				Logger: logger.With("component", "gemini_http"),
			},
			Timeout: cfg.GenerationTimeout,
		}
		gem, err := generation.NewGemini(ctx, generation.Config{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Instruction: p.Context,
			Timeout:     cfg.GenerationTimeout,
			HTTPClient:  httpClient,
		}, logger)
		if err != nil {
			logger.Error("failed to create Gemini model, using fallback responses", "error", err)
		} else {
			generator = gem
			logger.Info("✅ Gemini model initialized", "model", gem.Model())
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, using fallback responses")
	}

	chat := service.NewChatService(service.Options{
		Generator:        generator,
		Fallback:         classifier.FromPersona(p),
		MaxMessageLength: cfg.MaxMessageLength,
		Logger:           logger,
	})

	s := &Server{
		Config:      cfg,
		Persona:     p,
		ChatService: chat,
		Logger:      logger,
	}
	if cfg.MCPEnabled {
		s.MCPServer = newMCPServer(chat, p.Name, logger.With("component", "mcp"))
	}
	return s, nil
}

// SetupRouter configura as rotas e middlewares do Chi
func (s *Server) SetupRouter(
	handleRoot func(http.ResponseWriter, *http.Request),
	handleHealth func(http.ResponseWriter, *http.Request),
	handleChat func(http.ResponseWriter, *http.Request),
) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.Config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rotas JSON com tempo limite por requisição
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.Config.RequestTimeout))
		r.Get("/", handleRoot)
		r.Get("/health", handleHealth)
		r.Post("/chat", handleChat)
	})

	// O stream SSE do MCP é de longa duração e fica fora do Timeout
	if s.MCPServer != nil {
		mcpServer := s.MCPServer
		r.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return mcpServer }, nil))
	}

	s.Router = r
}

// Start inicia o servidor HTTP e bloqueia até o contexto ser cancelado,
// então faz o graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	if s.Router == nil {
		return errors.New("router is not configured")
	}

	// WriteTimeout vale para todas as respostas; com o stream MCP ativo o limite
	// fica só no middleware Timeout das rotas JSON.
	writeTimeout := s.Config.RequestTimeout + 5*time.Second
	if s.MCPServer != nil {
		writeTimeout = 0
	}

	httpServer := &http.Server{
		Addr:              s.Config.Addr(),
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("🚀 HTTP server started",
			"addr", httpServer.Addr,
			"bot", s.Persona.Name,
			"gemini_enabled", s.ChatService.GenerationEnabled(),
			"mcp_enabled", s.MCPServer != nil)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.Logger.Info("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.Logger.Info("✅ Server stopped gracefully")
	return nil
}
