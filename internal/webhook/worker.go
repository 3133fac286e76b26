package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_reporting_system/internal/config"
	"github.com/sirupsen/logrus"
)

// popTimeout ограничивает ожидание BRPOP, чтобы воркер замечал остановку
const popTimeout = 2 * time.Second

// maxRetryWait верхняя граница паузы между повторами доставки
const maxRetryWait = 5 * time.Minute

// WebhookWorker - структура для обработки и отправки вебхуков
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *resty.Client
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	// WebhookMaxRetries считает все попытки, resty только повторы
	retries := max(cfg.WebhookMaxRetries-1, 0)
	maxWait := retryMaxWait(cfg.WebhookBaseDelay, cfg.WebhookMaxRetries)
	httpClient := resty.New().
		SetTimeout(cfg.WebhookTimeout).
		SetRetryCount(retries).
		SetRetryWaitTime(cfg.WebhookBaseDelay).
		SetRetryMaxWaitTime(maxWait).
		SetHeader("Content-Type", "application/json").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || !resp.IsSuccess()
		})

	return &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient:  httpClient,
	}
}

// retryMaxWait возвращает base * 2^attempts, но не больше maxRetryWait
func retryMaxWait(base time.Duration, attempts int) time.Duration {
	if base <= 0 {
		return 0
	}
	wait := base
	for i := 0; i < attempts && wait < maxRetryWait; i++ {
		wait *= 2
	}
	return min(wait, maxRetryWait)
}

// Run обрабатывает очередь вебхуков до отмены контекста
func (w *WebhookWorker) Run(ctx context.Context) error {
	w.logger.Info("Starting webhook worker...")
	var delivered, failed int
	for {
		select {
		case <-ctx.Done():
			w.logger.WithFields(logrus.Fields{
				"delivered": delivered,
				"failed":    failed,
			}).Info("Stopping webhook worker.")
			return nil
		default:
		}

		result, err := w.redisClient.BRPop(ctx, popTimeout, webhookQueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.logger.WithError(err).Error("Failed to pop webhook event from Redis")
			sleepCtx(ctx, w.cfg.WebhookTimeout)
			continue
		}

		// result[0] - ключ, result[1] - значение
		payload := result[1]
		var event WebhookEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			w.logger.WithError(err).Error("Failed to unmarshal webhook event from Redis")
			continue
		}

		if w.processWebhookEvent(ctx, event, payload) {
			delivered++
		} else {
			failed++
		}
	}
}

// processWebhookEvent доставляет событие; повторы с экспоненциальной задержкой выполняет resty
func (w *WebhookWorker) processWebhookEvent(ctx context.Context, event WebhookEvent, rawPayload string) bool {
	log := w.logger.WithFields(logrus.Fields{
		"event_id":    event.ID,
		"event":       event.Event,
		"incident_id": event.IncidentID,
	})
	log.Debug("Processing webhook event...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return false
	}

	req := w.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Webhook-Event", string(event.Event)).
		SetBody(rawPayload)
	if w.cfg.WebhookSecret != "" {
		req.SetHeader("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := req.Post(w.cfg.WebhookURL)
	if err != nil {
		log.WithError(err).Errorf("Failed to deliver webhook after %d attempts", w.cfg.WebhookMaxRetries)
		return false
	}
	if !resp.IsSuccess() {
		log.Errorf("Webhook delivery failed with status code %d after %d attempts", resp.StatusCode(), w.cfg.WebhookMaxRetries)
		return false
	}

	log.Info("Webhook delivered successfully.")
	return true
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
