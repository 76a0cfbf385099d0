package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalLLMService_RejectsBadConfig(t *testing.T) {
	_, err := NewLocalLLMService("ftp://localhost:8080", "llama", "", time.Second)
	assert.Error(t, err)

	_, err = NewLocalLLMService("://broken", "llama", "", time.Second)
	assert.Error(t, err)

	_, err = NewLocalLLMService("http://localhost:8080/v1", "", "", time.Second)
	assert.Error(t, err)
}

func TestLocalLLM_GenerateJSON(t *testing.T) {
	var got chatCompletionRequest
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		authHeader = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"match_score\": 77}"}}]}`))
	}))
	defer srv.Close()

	client, err := NewLocalLLMService(srv.URL+"/v1/", "qwen2.5", "secret", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "local", client.Name())

	out, err := client.GenerateJSON(context.Background(), Prompt{
		System:      "You are a recruiter.",
		User:        "Score this CV.",
		Temperature: 0.2,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"match_score": 77}`, out)

	assert.Equal(t, "Bearer secret", authHeader)
	assert.Equal(t, "qwen2.5", got.Model)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	assert.InDelta(t, 0.2, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "You are a recruiter."}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "Score this CV."}, got.Messages[1])
}

func TestLocalLLM_NoSystemMessageWhenEmpty(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	client, err := NewLocalLLMService(srv.URL, "llama", "", time.Second)
	require.NoError(t, err)

	_, err = client.GenerateJSON(context.Background(), Prompt{User: "hi"})
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestLocalLLM_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, `model crashed`, "500"},
		{"api error", http.StatusOK, `{"error":{"message":"context too long"}}`, "context too long"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no text content"},
		{"not json", http.StatusOK, `<html>`, "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewLocalLLMService(srv.URL, "llama", "", time.Second)
			require.NoError(t, err)

			_, err = client.GenerateJSON(context.Background(), Prompt{User: "hi"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
