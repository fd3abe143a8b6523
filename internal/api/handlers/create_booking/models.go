package create_booking

import (
	"time"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	createBooking "github.com/mzavt/PWS-SchedulerService/internal/usecase/create_booking"
	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	ClientCompany *string `json:"clientCompany,omitempty"`
	Date          string  `json:"date"`      // "2026-03-15"
	StartTime     string  `json:"startTime"` // "10:00"
	EndTime       string  `json:"endTime"`   // "11:00"
	Topic         string  `json:"topic"`
	Message       string  `json:"message,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	ClientCompany *string `json:"clientCompany,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Topic         string  `json:"topic"`
	Message       string  `json:"message,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим времена слота
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		ClientCompany: r.ClientCompany,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		Topic:         r.Topic,
		Message:       r.Message,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		Reference:     resp.Reference,
		ClientName:    resp.ClientName,
		ClientEmail:   resp.ClientEmail,
		ClientPhone:   resp.ClientPhone,
		ClientCompany: resp.ClientCompany,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Topic:         resp.Topic,
		Message:       resp.Message,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
