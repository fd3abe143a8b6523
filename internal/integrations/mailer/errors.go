package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailer client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис рассылки недоступен; бронирование при этом
	// продолжает обрабатываться без уведомления
	ErrServiceDegraded = errors.New("mailer unavailable: graceful degradation applied")
)
