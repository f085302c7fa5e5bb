package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMissingAPIKeyNoNetworkCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClientWith("", "test-model", srv.URL, srv.Client())
	_, err := c.GenerateText(context.Background(), "hello")

	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Error("no request may be sent when the key is missing")
	}
}

func TestGenerateTextConcatenatesParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "key=k") {
			t.Errorf("missing api key in query: %s", r.URL.RawQuery)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("responseMimeType = %q", req.GenerationConfig.ResponseMimeType)
		}
		if req.GenerationConfig.MaxOutputTokens != maxOutputTokens {
			t.Errorf("maxOutputTokens = %d", req.GenerationConfig.MaxOutputTokens)
		}

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"a\":"},{"text":"1}"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClientWith("k", "test-model", srv.URL, srv.Client())
	got, err := c.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("text = %q", got)
	}
}

func TestGenerateWithFileSendsInlineData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		parts := req.Contents[0].Parts
		if len(parts) != 2 || parts[1].InlineData == nil {
			t.Fatalf("expected a text part and a file part, got %+v", parts)
		}
		if parts[1].InlineData.MimeType != "application/pdf" {
			t.Errorf("mime type = %q", parts[1].InlineData.MimeType)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClientWith("k", "test-model", srv.URL, srv.Client())
	if _, err := c.GenerateWithFile(context.Background(), "parse", InlineData{MimeType: "application/pdf", Data: "AAAA"}); err != nil {
		t.Fatalf("GenerateWithFile: %v", err)
	}
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	c := NewClientWith("k", "test-model", srv.URL, srv.Client())
	_, err := c.GenerateText(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected upstream message in error, got %v", err)
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClientWith("k", "test-model", srv.URL, srv.Client())
	if _, err := c.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
