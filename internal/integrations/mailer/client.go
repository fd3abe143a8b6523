package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с сервисом почтовых уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса рассылки
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление о событии бронирования
func (c *Client) Send(ctx context.Context, n *Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendWithGracefulDegradation отправляет уведомление с graceful degradation
// При недоступности сервиса рассылки возвращает ErrServiceDegraded:
// бронирование при этом считается успешным и обрабатывается дальше
func (c *Client) SendWithGracefulDegradation(ctx context.Context, n *Notification) error {
	c.log.Info("Sending %s notification for booking reference=%s", n.Event, n.Reference)

	if err := c.Send(ctx, n); err != nil {
		// Недоступность сервиса рассылки не должна ломать бронирование
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("Mailer unavailable, applying graceful degradation for reference=%s: %v", n.Reference, err)
		return fmt.Errorf("%w: reference=%s, error=%v", ErrServiceDegraded, n.Reference, err)
	}

	c.log.Info("Successfully sent %s notification for reference=%s", n.Event, n.Reference)
	return nil
}
