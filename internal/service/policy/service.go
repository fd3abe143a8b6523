package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	policyRepo "github.com/mzavt/PWS-SchedulerService/internal/infra/storage/policy"
	"github.com/mzavt/PWS-SchedulerService/internal/service/policy/models"
	"github.com/mzavt/PWS-SchedulerService/pkg/types"
)

// Service сервис для работы с политикой доступности
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политики
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Get получает текущую политику доступности
// Если политика ещё не настроена, создаёт и сохраняет политику по умолчанию:
// после первого обращения система всегда работает с явной политикой
func (s *Service) Get(ctx context.Context) (*models.PolicyResponse, error) {
	policy, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomainPolicy(policy), nil
}

// GetDomain получает текущую политику как domain модель
// Используется материализатором слотов
func (s *Service) GetDomain(ctx context.Context) (*domain.AvailabilityPolicy, error) {
	return s.getOrCreate(ctx)
}

// Update полностью заменяет политику доступности
// При ошибке валидации сохранённая политика остаётся без изменений
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: updating availability policy")

	// 1. Валидируем входные данные до любых записей
	if err := s.validatePolicy(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Убеждаемся, что строка политики существует (лениво создаётся дефолтная)
	if _, err := s.getOrCreate(ctx); err != nil {
		return nil, err
	}

	// 3. Полная замена
	updated, err := s.policyRepo.Update(ctx, req.ToDomainPolicy())
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: availability policy updated")
	return models.FromDomainPolicy(updated), nil
}

// getOrCreate получает политику, лениво создавая дефолтную при её отсутствии
func (s *Service) getOrCreate(ctx context.Context) (*domain.AvailabilityPolicy, error) {
	policy, err := s.policyRepo.Get(ctx)
	if err == nil {
		return policy, nil
	}

	if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		s.logger.Error("getOrCreate: repository error: %v", err)
		return nil, fmt.Errorf("%w: getOrCreate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("getOrCreate: no policy configured, creating default")

	created, err := s.policyRepo.Create(ctx, domain.DefaultPolicy())
	if err != nil {
		s.logger.Error("getOrCreate: failed to create default policy: %v", err)
		return nil, fmt.Errorf("%w: getOrCreate - failed to create default policy: %v", ErrInternal, err)
	}

	return created, nil
}

// validatePolicy проверяет все поля запроса на замену политики
func (s *Service) validatePolicy(req *models.UpdatePolicyRequest) error {
	// Дни недели: 0 (воскресенье) - 6 (суббота), без дубликатов
	seen := make(map[int]bool, len(req.ActiveWeekdays))
	for _, day := range req.ActiveWeekdays {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: weekday must be between 0 and 6, got %d", ErrInvalidInput, day)
		}
		if seen[day] {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, day)
		}
		seen[day] = true
	}

	// Окна: корректный формат времени, начало строго раньше конца
	for _, w := range req.DailyWindows {
		start := types.TimeString(w.StartTime)
		end := types.TimeString(w.EndTime)

		if err := start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid window start time %q", ErrInvalidInput, w.StartTime)
		}
		if err := end.Validate(); err != nil {
			return fmt.Errorf("%w: invalid window end time %q", ErrInvalidInput, w.EndTime)
		}
		if !start.IsBefore(end) {
			return fmt.Errorf("%w: window start %s must be before end %s", ErrInvalidInput, w.StartTime, w.EndTime)
		}
	}

	// Числовые параметры
	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if req.BufferMinutes < 0 || req.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between 0 and %d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}
	if req.HorizonDays < domain.MinHorizonDays || req.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizon must be between %d and %d days",
			ErrInvalidInput, domain.MinHorizonDays, domain.MaxHorizonDays)
	}

	// Исключённые даты
	for _, d := range req.ExcludedDates {
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return fmt.Errorf("%w: invalid excluded date %q, expected format %s", ErrInvalidInput, d, domain.DateFormat)
		}
	}

	return nil
}
