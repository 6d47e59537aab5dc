package notificationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client клиент внешнего сервиса уведомлений (email / sms)
type Client struct {
	baseURL    string
	apiKey     string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента.
// В выключенном режиме уведомления только пишутся в лог.
func NewClient(baseURL, apiKey string, enabled bool, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendEmail отправляет email
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	return c.send(ctx, NotifyRequest{Channel: ChannelEmail, Recipient: to, Subject: &subject, Body: body})
}

// SendSMS отправляет SMS
func (c *Client) SendSMS(ctx context.Context, phone, message string) error {
	return c.send(ctx, NotifyRequest{Channel: ChannelSMS, Recipient: phone, Body: message})
}

func (c *Client) send(ctx context.Context, payload NotifyRequest) error {
	if !c.enabled {
		if payload.Subject != nil {
			c.log.Info("NotificationAPI: disabled, skipping %s to %s with subject '%s' and body '%s'",
				payload.Channel, payload.Recipient, *payload.Subject, payload.Body)
		} else {
			c.log.Info("NotificationAPI: disabled, skipping %s to %s with message '%s'",
				payload.Channel, payload.Recipient, payload.Body)
		}
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notify", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d for %s to %s: %s", ErrRejected, resp.StatusCode, payload.Channel, payload.Recipient, string(body))
	}

	return nil
}
