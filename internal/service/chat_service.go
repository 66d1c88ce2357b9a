package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/vitormoschetta/rameezbot/internal/generation"
)

const DefaultMaxMessageLength = 1000

var (
	// ErrEmptyInput indica mensagem vazia após o trim
	ErrEmptyInput = errors.New("message cannot be empty")
	// ErrMessageTooLong indica mensagem acima do limite configurado
	ErrMessageTooLong = errors.New("message is too long")
	// ErrInternal indica falha inesperada fora da chamada de geração
	ErrInternal = errors.New("internal error")
)

// Source identifica quem produziu a resposta
type Source string

const (
	SourceGeneration Source = "gemini"
	SourceFallback   Source = "fallback"
)

// Reply é o resultado de HandleChat
type Reply struct {
	Text   string
	Source Source
}

// Responder produz a resposta determinística de fallback
type Responder interface {
	Classify(message string) string
}

// ChatService despacha cada mensagem para o gerador ou para o fallback.
// Não guarda estado entre requisições.
type ChatService struct {
	generator        generation.Generator
	fallback         Responder
	maxMessageLength int
	logger           *slog.Logger
}

// Options configura o ChatService. Generator nil significa modo somente fallback.
type Options struct {
	Generator        generation.Generator
	Fallback         Responder
	MaxMessageLength int
	Logger           *slog.Logger
}

// NewChatService cria o serviço de chat
func NewChatService(opts Options) *ChatService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	maxLen := opts.MaxMessageLength
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLength
	}
	return &ChatService{
		generator:        opts.Generator,
		fallback:         opts.Fallback,
		maxMessageLength: maxLen,
		logger:           logger.With("component", "chat_service"),
	}
}

// GenerationEnabled informa se o gerador foi configurado na inicialização
func (s *ChatService) GenerationEnabled() bool {
	return s.generator != nil
}

// MaxMessageLength retorna o limite de caracteres aceito
func (s *ChatService) MaxMessageLength() int {
	return s.maxMessageLength
}

// HandleChat valida a mensagem e devolve a resposta do gerador ou do fallback.
// Falhas de geração nunca chegam ao chamador.
func (s *ChatService) HandleChat(ctx context.Context, message string) (reply Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "chat handling panicked", "panic", r)
			reply = Reply{}
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyInput
	}
	if n := utf8.RuneCountInString(message); n > s.maxMessageLength {
		return Reply{}, fmt.Errorf("%w: %d characters, maximum is %d", ErrMessageTooLong, n, s.maxMessageLength)
	}

	if s.generator != nil {
		text, genErr := s.generate(ctx, message)
		if genErr == nil {
			return Reply{Text: text, Source: SourceGeneration}, nil
		}
		s.logger.WarnContext(ctx, "generation failed, using fallback", "error", genErr)
	}

	if s.fallback == nil {
		return Reply{}, fmt.Errorf("%w: no fallback responder configured", ErrInternal)
	}
	text := s.fallback.Classify(message)
	if text == "" {
		return Reply{}, fmt.Errorf("%w: fallback produced an empty reply", ErrInternal)
	}
	return Reply{Text: text, Source: SourceFallback}, nil
}

func (s *ChatService) generate(ctx context.Context, message string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: panic: %v", generation.ErrGeneration, r)
		}
	}()

	text, err = s.generator.Generate(ctx, message)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %w", generation.ErrGeneration, generation.ErrEmptyResponse)
	}
	return text, nil
}
