package model

// ChatRequest representa a requisição para o endpoint de chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse representa a resposta do endpoint de chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Textos de erro exibidos ao cliente, compartilhados por /chat e pela ferramenta MCP
const (
	DetailEmptyMessage   = "Message cannot be empty"
	DetailInvalidJSON    = "Invalid JSON format"
	DetailMessageTooLong = "Message is too long"
	DetailInternal       = "Internal server error"
)

// ErrorResponse é devolvida com status 4xx/5xx
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RootResponse descreve o serviço no endpoint raiz
type RootResponse struct {
	Status        string `json:"status"`
	GeminiEnabled bool   `json:"gemini_enabled"`
	Message       string `json:"message"`
}

// HealthResponse é devolvida pelo health check
type HealthResponse struct {
	Status    string `json:"status"`
	GeminiAPI string `json:"gemini_api"`
}
