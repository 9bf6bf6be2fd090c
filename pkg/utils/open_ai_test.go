package utils_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatihtunali/travelquotebot/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1718000000,
  "model": "turkey-expert",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"title\":\"ok\"}"}, "finish_reason": "stop"}]
}`

func newOpenAIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerate_SendsFixedParameters(t *testing.T) {
	var got map[string]any
	srv := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionReply))
	})

	client := utils.NewOpenAIGenerationClient("sk-test", srv.URL+"/v1", testParams)
	text, err := client.Generate(context.Background(), "plan a trip")

	require.NoError(t, err)
	assert.Equal(t, `{"title":"ok"}`, text)
	assert.Equal(t, "turkey-expert", got["model"])
	assert.InDelta(t, 0.5, got["temperature"], 0.0001)
	assert.EqualValues(t, 16000, got["max_tokens"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	assert.Nil(t, got["stream"])

	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
	assert.Equal(t, "plan a trip", messages[0].(map[string]any)["content"])
}

func TestOpenAIGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	params := testParams
	params.Timeout = 50 * time.Millisecond
	_, err := utils.NewOpenAIGenerationClient("sk-test", srv.URL+"/v1", params).Generate(context.Background(), "p")

	assert.ErrorIs(t, err, utils.ErrGenerationTimeout)
}

func TestOpenAIGenerate_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := utils.NewOpenAIGenerationClient("sk-test", url+"/v1", testParams).Generate(context.Background(), "p")

	assert.ErrorIs(t, err, utils.ErrGenerationTransport)
	assert.NotErrorIs(t, err, utils.ErrGenerationTimeout)
}

func TestOpenAIGenerate_NoChoices(t *testing.T) {
	srv := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-2","object":"chat.completion","choices":[]}`))
	})

	_, err := utils.NewOpenAIGenerationClient("sk-test", srv.URL+"/v1", testParams).Generate(context.Background(), "p")

	assert.ErrorIs(t, err, utils.ErrGenerationTransport)
}

func TestOpenAIGenerate_ServerError(t *testing.T) {
	srv := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	})

	_, err := utils.NewOpenAIGenerationClient("sk-test", srv.URL+"/v1", testParams).Generate(context.Background(), "p")

	assert.ErrorIs(t, err, utils.ErrGenerationTransport)
	assert.NotErrorIs(t, err, utils.ErrGenerationTimeout)
}
