package mailer

// Notification письмо-уведомление о событии бронирования
type Notification struct {
	Recipient string `json:"recipient"`
	Reference string `json:"reference"`
	Event     string `json:"event"` // created, confirmed, cancelled, completed
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Topic     string `json:"topic"`
}

// ErrorResponse модель ошибки от сервиса рассылки
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
