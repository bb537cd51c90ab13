package facepp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNoFace indica que el servicio no detecto ninguna cara en la imagen.
// Es un resultado distinto de una deteccion con baja confianza.
var ErrNoFace = errors.New("no face detected")

// Detector define la interfaz del reconocedor facial de emociones.
type Detector interface {
	DetectEmotions(ctx context.Context, imageBase64 string) (map[string]float64, error)
}

// HTTPClient implementa Detector contra el endpoint detect de Face++.
type HTTPClient struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
	logger    *zap.Logger
}

// NewHTTPClient construye el cliente apuntando al endpoint de deteccion.
func NewHTTPClient(baseURL, apiKey, apiSecret string, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "https://api-us.faceplusplus.com"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

// DetectEmotions envia la imagen en base64 y devuelve el mapa
// emocion->confianza (0-100) de la primera cara detectada.
func (c *HTTPClient) DetectEmotions(ctx context.Context, imageBase64 string) (map[string]float64, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fields := map[string]string{
		"image_base64":      imageBase64,
		"api_key":           c.apiKey,
		"api_secret":        c.apiSecret,
		"return_attributes": "emotion",
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write form field: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/facepp/v3/detect", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("face detect error", zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		return nil, fmt.Errorf("face detect http error: status=%d", resp.StatusCode)
	}

	var dr detectResponse
	if err := json.Unmarshal(respBody, &dr); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if dr.ErrorMessage != "" {
		return nil, fmt.Errorf("face detect api error: %s", dr.ErrorMessage)
	}
	if len(dr.Faces) == 0 {
		return nil, ErrNoFace
	}

	return dr.Faces[0].Attributes.Emotion, nil
}

type detectResponse struct {
	Faces []struct {
		Attributes struct {
			Emotion map[string]float64 `json:"emotion"`
		} `json:"attributes"`
	} `json:"faces"`
	ErrorMessage string `json:"error_message,omitempty"`
}
