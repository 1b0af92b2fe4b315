package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ihor-metko/courtbook/libs/httpx"
)

func TestPublicMiddlewareFallsBackToInMemoryLimiter(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "2")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), publicMiddleware(logger, nil)...)

	for i := 0; i < 2; i++ {
		rw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/public/reserve", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rw, req)
		if rw.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rw.Code)
		}
	}

	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/public/reserve", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	h.ServeHTTP(rw, req)
	if rw.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the limit is exhausted, got %d", rw.Code)
	}
}

func TestPublicMiddlewareAppliesCORSPolicy(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://club.example")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "100")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), publicMiddleware(logger, nil)...)

	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/public/courts/availability", nil)
	req.Header.Set("Origin", "https://club.example")
	h.ServeHTTP(rw, req)
	if got := rw.Header().Get("Access-Control-Allow-Origin"); got != "https://club.example" {
		t.Fatalf("expected allowed origin to be echoed, got %q", got)
	}

	rwDenied := httptest.NewRecorder()
	reqDenied := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/public/courts/availability", nil)
	reqDenied.Header.Set("Origin", "https://evil.example")
	h.ServeHTTP(rwDenied, reqDenied)
	if got := rwDenied.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS headers for an unknown origin, got %q", got)
	}
}

func TestParseListAndIsTruthy(t *testing.T) {
	got := parseList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected parseList result: %v", got)
	}
	if len(parseList("")) != 0 {
		t.Fatal("empty input should yield no items")
	}
	if !isTruthy("TRUE") || !isTruthy(" yes ") || isTruthy("0") || isTruthy("") {
		t.Fatal("isTruthy misclassified an input")
	}
}
