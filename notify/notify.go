// Package notify delivers report summaries to an outbound channel. The
// engine treats delivery as best-effort; a failed publish never blocks or
// fails a trade confirmation.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Notifier interface {
	Publish(summaries []string) error
}

// Nop discards everything. It is the default channel.
type Nop struct{}

func (Nop) Publish([]string) error { return nil }

const telegramAPI = "https://api.telegram.org"

// Telegram publishes summaries to a chat through the Bot API.
type Telegram struct {
	Token  string
	ChatID string

	// BaseURL overrides the Bot API host, for tests.
	BaseURL string
	Client  *http.Client
}

func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		Token:  token,
		ChatID: chatID,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) Publish(summaries []string) error {
	base := t.BaseURL
	if base == "" {
		base = telegramAPI
	}
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	body, err := json.Marshal(map[string]string{
		"chat_id":    t.ChatID,
		"text":       strings.Join(summaries, "\n\n"),
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", base, t.Token)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: send: status %s", resp.Status)
	}
	return nil
}
