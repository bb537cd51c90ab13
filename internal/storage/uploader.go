package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Uploader sube archivos binarios y devuelve una URL publica.
type Uploader interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
}

// HTTPUploader sube objetos a un bucket de storage compatible con Supabase.
type HTTPUploader struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPUploader(baseURL, apiKey, bucket string, logger *zap.Logger) (*HTTPUploader, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("storage base url is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("storage api key is required")
	}
	if strings.TrimSpace(bucket) == "" {
		bucket = "ecg-files"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPUploader{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}, nil
}

// escapeObjectPath escapa cada segmento del path pero conserva las barras.
func escapeObjectPath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func (u *HTTPUploader) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if strings.TrimSpace(objectPath) == "" {
		return "", fmt.Errorf("object path is required")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("data is empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	cleanPath := escapeObjectPath(strings.TrimLeft(objectPath, "/"))
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", u.baseURL, u.bucket, cleanPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage http error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.baseURL, u.bucket, cleanPath)
	u.logger.Debug("archivo subido", zap.String("bucket", u.bucket), zap.String("path", objectPath))
	return publicURL, nil
}

// disabledUploader devuelve una URL sintetica cuando no hay storage configurado.
type disabledUploader struct {
	logger *zap.Logger
}

func NewDisabledUploader(logger *zap.Logger) Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &disabledUploader{logger: logger}
}

func (u *disabledUploader) Upload(_ context.Context, objectPath, _ string, _ []byte) (string, error) {
	u.logger.Debug("storage deshabilitado, se omite la subida", zap.String("path", objectPath))
	return "local://" + strings.TrimLeft(objectPath, "/"), nil
}
