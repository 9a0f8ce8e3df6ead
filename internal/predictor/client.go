// Package predictor отправляет URL на бэкенд предсказаний.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Totarae/phishcheck/internal/model"
	"go.uber.org/zap"
)

// ErrTransport объединяет все сбои запроса: сеть, таймаут, разбор ответа.
var ErrTransport = errors.New("predict request failed")

// Client выполняет один POST на эндпоинт предсказаний, без повторов.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient создаёт клиента. timeout == 0 означает отсутствие таймаута.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Endpoint возвращает адрес бэкенда.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict отправляет {"url": url} и разбирает JSON-ответ.
// Код статуса не проверяется: тело с валидным JSON принимается при любом статусе.
func (c *Client) Predict(ctx context.Context, url string) (*model.PredictResponse, error) {
	body, err := json.Marshal(model.PredictRequest{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("predict response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	out, err := decodeResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode body (status %d): %v", ErrTransport, resp.StatusCode, err)
	}
	return out, nil
}
