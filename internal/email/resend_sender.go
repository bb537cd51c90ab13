package email

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

// ResendSender envia el correo de resultados via la API HTTP de Resend.
type ResendSender struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

func NewResendSender(baseURL, apiKey, from string) (*ResendSender, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	if strings.TrimSpace(from) == "" {
		from = "Gita Wellness <onboarding@resend.dev>"
	}
	return &ResendSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (s *ResendSender) SendResult(ctx context.Context, toEmail, name string, msg ResultMessage) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("to email is required")
	}

	reqBody := resendRequest{
		From:    s.from,
		To:      toEmail,
		Subject: "Your Emotional Result",
		HTML:    buildResultHTML(name, msg),
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend http error: status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return nil
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
