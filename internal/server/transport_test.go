package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func TestLoggingTransportLogsWithoutSecrets(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := &http.Client{Transport: &LoggingTransport{Logger: logger}}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1beta/models/gemini:generateContent?key=super-secret", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("x-goog-api-key", "header-secret")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusTeapot {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	out := buf.String()
	if !strings.Contains(out, "path=/v1beta/models/gemini:generateContent") {
		t.Fatalf("log missing path: %s", out)
	}
	if !strings.Contains(out, "status=418") {
		t.Fatalf("log missing status: %s", out)
	}
	if strings.Contains(out, "super-secret") || strings.Contains(out, "header-secret") {
		t.Fatalf("log leaked credentials: %s", out)
	}
}

func TestLoggingTransportLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	boom := errors.New("connection refused")
	transport := &LoggingTransport{
		Base:   roundTripFunc(func(*http.Request) (*http.Response, error) { return nil, boom }),
		Logger: logger,
	}

	req := httptest.NewRequest(http.MethodGet, "https://generativelanguage.googleapis.com/v1beta/models", nil)
	_, err := transport.RoundTrip(req)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "connection refused") {
		t.Fatalf("unexpected log: %s", out)
	}
}

func TestLoggingTransportWithoutLogger(t *testing.T) {
	called := false
	transport := &LoggingTransport{
		Base: roundTripFunc(func(*http.Request) (*http.Response, error) {
			called = true
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		}),
	}

	resp, err := transport.RoundTrip(httptest.NewRequest(http.MethodGet, "http://example.com/", nil))
	if err != nil || resp.StatusCode != http.StatusOK || !called {
		t.Fatalf("resp = %v, err = %v, called = %v", resp, err, called)
	}
}
