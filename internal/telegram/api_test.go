package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var (
		mu           sync.Mutex
		gotPath      string
		gotRequestID string
		gotBody      SendMessageRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	api := NewTelegramAPIWithBaseURL("123:abc", srv.URL+"/")
	require.True(t, api.Enabled())
	require.NoError(t, api.SendMessage("req-1", 42, "check this :thumbsup: out", 7))

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "req-1", gotRequestID)
	assert.Equal(t, SendMessageRequest{ChatID: 42, Text: "check this :thumbsup: out", ReplyToMessageID: 7}, gotBody)
}

func TestSendMessageErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewTelegramAPIWithBaseURL("t", srv.URL).SendMessage("req", 1, "hi", 0)
	assert.ErrorContains(t, err, "non-2xx status: 403")

	api := NewTelegramAPI("")
	assert.False(t, api.Enabled())
	assert.ErrorContains(t, api.SendMessage("req", 1, "hi", 0), "TELEGRAM_BOT_TOKEN")
}

func TestIncomingMessage(t *testing.T) {
	msg := &Message{MessageID: 1}
	assert.Same(t, msg, (&Update{Message: msg}).IncomingMessage())
	assert.Same(t, msg, (&Update{ChannelPost: msg}).IncomingMessage())
	assert.Same(t, msg, (&Update{EditedMessage: msg}).IncomingMessage())
	assert.Nil(t, (&Update{}).IncomingMessage())
}
