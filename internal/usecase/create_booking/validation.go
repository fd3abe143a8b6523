package create_booking

import (
	"fmt"
	"strings"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if err := validateEmail(req.ClientEmail); err != nil {
		return err
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что времена слота указаны
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if len(req.Topic) > domain.MaxTopicLength {
		return fmt.Errorf("%w: topic must not exceed %d characters", ErrInvalidInput, domain.MaxTopicLength)
	}
	if len(req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message must not exceed %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	return nil
}

// validateEmail проверяет минимальную корректность email
// Полная RFC-валидация не требуется: письмо с недоставляемым адресом
// просто не дойдёт, бизнес-логика от этого не страдает
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: invalid clientEmail format", ErrInvalidInput)
	}
	if !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: invalid clientEmail format", ErrInvalidInput)
	}

	return nil
}
