package server

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport registra as chamadas HTTP feitas à API do Gemini.
// Query string e headers não são logados porque carregam a API key.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if t.Logger == nil {
		return resp, err
	}

	attrs := []any{
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"duration", time.Since(start),
	}
	if err != nil {
		t.Logger.WarnContext(req.Context(), "gemini request failed", append(attrs, "error", err)...)
		return resp, err
	}
	t.Logger.DebugContext(req.Context(), "gemini request", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}
