// Package generation encapsula a chamada ao modelo generativo (Gemini).
package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 15 * time.Second
)

var (
	// ErrGeneration envolve qualquer falha da chamada externa
	ErrGeneration = errors.New("generation failed")
	// ErrEmptyResponse indica que o modelo respondeu sem texto
	ErrEmptyResponse = errors.New("empty response from model")
)

// Generator produz uma resposta livre para a mensagem do usuário
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// Config contém os parâmetros do cliente Gemini
type Config struct {
	APIKey      string
	Model       string
	Instruction string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

var newModel = func(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return gemini.NewModel(ctx, modelName, cfg)
}

// Gemini implementa Generator usando o modelo Gemini do ADK
type Gemini struct {
	llm         model.LLM
	modelName   string
	instruction string
	timeout     time.Duration
	logger      *slog.Logger
}

// NewGemini cria o modelo a partir da API key. Não faz nenhuma chamada de rede.
func NewGemini(ctx context.Context, cfg Config, logger *slog.Logger) (*Gemini, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	cfg = withDefaults(cfg)

	llm, err := newModel(ctx, cfg.Model, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return NewGeminiWithModel(llm, cfg, logger), nil
}

// NewGeminiWithModel usa um model.LLM já construído
func NewGeminiWithModel(llm model.LLM, cfg Config, logger *slog.Logger) *Gemini {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg = withDefaults(cfg)
	return &Gemini{
		llm:         llm,
		modelName:   cfg.Model,
		instruction: cfg.Instruction,
		timeout:     cfg.Timeout,
		logger:      logger.With("component", "gemini"),
	}
}

func withDefaults(cfg Config) Config {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// Model retorna o nome do modelo configurado
func (g *Gemini) Model() string { return g.modelName }

// Generate envia a mensagem com a instrução de sistema e devolve o texto gerado.
// Não há retentativas: qualquer erro volta envolvido em ErrGeneration.
func (g *Gemini) Generate(ctx context.Context, message string) (reply string, err error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			reply = ""
			err = fmt.Errorf("%w: panic in model call: %v", ErrGeneration, r)
		}
	}()

	req := &model.LLMRequest{
		Model:    g.modelName,
		Contents: []*genai.Content{genai.NewContentFromText(message, genai.RoleUser)},
		Config:   &genai.GenerateContentConfig{},
	}
	if g.instruction != "" {
		req.Config.SystemInstruction = genai.NewContentFromText(g.instruction, genai.RoleUser)
	}

	start := time.Now()
	var responseText strings.Builder
	for resp, respErr := range g.llm.GenerateContent(callCtx, req, false) {
		if respErr != nil {
			return "", fmt.Errorf("%w: %w", ErrGeneration, respErr)
		}
		if resp == nil {
			continue
		}
		if resp.ErrorCode != "" {
			return "", fmt.Errorf("%w: %s: %s", ErrGeneration, resp.ErrorCode, resp.ErrorMessage)
		}
		if resp.Content == nil {
			continue
		}
		for _, part := range resp.Content.Parts {
			if part != nil && part.Text != "" && !part.Thought {
				responseText.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(responseText.String())
	if text == "" {
		return "", fmt.Errorf("%w: %w", ErrGeneration, ErrEmptyResponse)
	}

	g.logger.DebugContext(ctx, "generation completed",
		"model", g.modelName,
		"reply_length", len(text),
		"duration", time.Since(start))
	return text, nil
}
