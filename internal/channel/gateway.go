package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GatewayChannel posts messages to a WhatsApp HTTP gateway.
type GatewayChannel struct {
	url    string
	token  string
	client *http.Client
}

type gatewayRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func NewGatewayChannel(url, token string, client *http.Client) *GatewayChannel {
	if client == nil {
		client = http.DefaultClient
	}
	return &GatewayChannel{url: url, token: token, client: client}
}

func (c *GatewayChannel) Deliver(ctx context.Context, phone, text string) error {
	body, err := json.Marshal(gatewayRequest{Phone: phone, Message: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "reminder-engine/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
}
