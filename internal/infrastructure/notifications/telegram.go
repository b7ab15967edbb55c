package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"adlicense.backend/internal/config"
)

// TelegramClient pushes short operational alerts to the admin chat
type TelegramClient struct {
	cfg        config.TelegramConfig
	httpClient *http.Client
}

// NewTelegramClient creates a new telegram client
func NewTelegramClient(cfg config.TelegramConfig) *TelegramClient {
	return &TelegramClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a bot token is configured
func (t *TelegramClient) Enabled() bool {
	return t.cfg.BotToken != "" && t.cfg.ChatID != ""
}

// SendMessage posts a message to the configured chat
func (t *TelegramClient) SendMessage(ctx context.Context, text string) error {
	if !t.Enabled() {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.cfg.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.cfg.APIBase, t.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("telegram api returned " + resp.Status)
	}
	return nil
}
