package notifier

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/thetjan888/nft-music/internal/log"
	"go.uber.org/zap"
)

// Webhook delivers market events to a configured endpoint as JSON.
// Delivery is best effort with retries; a failed delivery is logged and
// dropped, never surfaced to the engine.
type Webhook struct {
	client *retryablehttp.Client
	url    string
}

func NewWebhook(url string, retries, timeout int) *Webhook {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.HTTPClient.Timeout = time.Duration(timeout) * time.Second
	client.Logger = webhookLogger{}

	return &Webhook{client: client, url: url}
}

func (w *Webhook) HandleEvent(msg interface{}) {
	body, err := json.Marshal(msg)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Webhook: Failed to encode event")
		return
	}

	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(body))
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("url", w.url)).Error("Webhook: Failed to deliver event")
		return
	}
	defer resp.Body.Close()

	zap.L().With(
		zap.String("url", w.url),
		zap.Int("status", resp.StatusCode),
	).Debug("Webhook: Event delivered")
}

type webhookLogger struct{}

var _ log.Logger = webhookLogger{}

func (l webhookLogger) Printf(format string, v ...interface{}) {
	zap.S().Debugf(format, v...)
}
