package create_booking

import (
	"time"

	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientName    string           // Имя клиента
	ClientEmail   string           // Email клиента
	ClientPhone   *string          // Телефон клиента (опционально)
	ClientCompany *string          // Компания клиента (опционально)
	Date          time.Time        // Дата консультации (без времени)
	StartTime     types.TimeString // Время начала слота
	EndTime       types.TimeString // Время окончания слота
	Topic         string           // Тема консультации
	Message       string           // Сопроводительное сообщение (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	Reference string // Публичная ссылка для проверки статуса

	ClientName    string
	ClientEmail   string
	ClientPhone   *string
	ClientCompany *string

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	Topic   string
	Message string

	Status string

	CreatedAt time.Time
	UpdatedAt time.Time
}
