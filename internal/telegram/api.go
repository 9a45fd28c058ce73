package telegram

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.telegram.org"

type TelegramAPI struct {
	token   string
	baseURL string
	client  *resty.Client
}

func NewTelegramAPI(token string) *TelegramAPI {
	return NewTelegramAPIWithBaseURL(token, defaultBaseURL)
}

// NewTelegramAPIWithBaseURL talks to a Bot API server other than api.telegram.org.
func NewTelegramAPIWithBaseURL(token, baseURL string) *TelegramAPI {
	return &TelegramAPI{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  resty.New(),
	}
}

// Enabled reports whether a bot token is configured.
func (t *TelegramAPI) Enabled() bool {
	return t != nil && t.token != ""
}

// SendMessage sends a message to a Telegram chat, optionally as a reply.
func (t *TelegramAPI) SendMessage(requestID string, chatID int64, text string, replyTo int) error {
	token := t.token
	if token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	reply := SendMessageRequest{
		ChatID:           chatID,
		Text:             text,
		ReplyToMessageID: replyTo,
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, token)
	resp, err := t.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", requestID).
		SetBody(reply).
		Post(url)

	if err != nil {
		return fmt.Errorf("http call to telegram failed: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("telegram returned non-2xx status: %d", resp.StatusCode())
	}

	return nil
}
