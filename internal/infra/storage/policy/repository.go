package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mzavt/PWS-SchedulerService/internal/domain"
	"github.com/mzavt/PWS-SchedulerService/pkg/dbmetrics"
	"github.com/mzavt/PWS-SchedulerService/pkg/psqlbuilder"
)

// policyRowID политика хранится единственной строкой с фиксированным id
// Репозиторий не даёт создать вторую строку
const policyRowID = 1

// Repository репозиторий для работы с политикой доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает политику доступности
// Возвращает ErrPolicyNotFound, если политика ещё не создана
func (r *Repository) Get(ctx context.Context) (*domain.AvailabilityPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"active_weekdays",
		"daily_windows",
		"slot_duration_minutes",
		"buffer_minutes",
		"horizon_days",
		"excluded_dates",
		"created_at",
		"updated_at",
	).
		From("availability_policy").
		Where(squirrel.Eq{"id": policyRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.AvailabilityPolicy
	var weekdays pq.Int64Array
	var excludedDates pq.StringArray
	var windowsJSON []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&weekdays,
		&windowsJSON,
		&p.SlotDurationMinutes,
		&p.BufferMinutes,
		&p.HorizonDays,
		&excludedDates,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan policy: %v", ErrScanRow, err)
	}

	p.ActiveWeekdays = make([]int, len(weekdays))
	for i, d := range weekdays {
		p.ActiveWeekdays[i] = int(d)
	}
	p.ExcludedDates = excludedDates

	if err := json.Unmarshal(windowsJSON, &p.DailyWindows); err != nil {
		return nil, fmt.Errorf("%w: Get - decode daily windows: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Create сохраняет политику впервые (единственная строка)
func (r *Repository) Create(ctx context.Context, p *domain.AvailabilityPolicy) (*domain.AvailabilityPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	windowsJSON, err := json.Marshal(p.DailyWindows)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode daily windows: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("availability_policy").
		Columns(
			"id",
			"active_weekdays",
			"daily_windows",
			"slot_duration_minutes",
			"buffer_minutes",
			"horizon_days",
			"excluded_dates",
		).
		Values(
			policyRowID,
			pq.Array(p.ActiveWeekdays),
			windowsJSON,
			p.SlotDurationMinutes,
			p.BufferMinutes,
			p.HorizonDays,
			pq.Array(p.ExcludedDates),
		).
		// Два конкурентных первых чтения могут оба попытаться создать дефолт -
		// конфликт по id просто игнорируем
		Suffix("ON CONFLICT (id) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		// Строка уже существует - перечитываем её
		return r.Get(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// Update полностью заменяет политику
func (r *Repository) Update(ctx context.Context, p *domain.AvailabilityPolicy) (*domain.AvailabilityPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	windowsJSON, err := json.Marshal(p.DailyWindows)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - encode daily windows: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("availability_policy").
		Set("active_weekdays", pq.Array(p.ActiveWeekdays)).
		Set("daily_windows", windowsJSON).
		Set("slot_duration_minutes", p.SlotDurationMinutes).
		Set("buffer_minutes", p.BufferMinutes).
		Set("horizon_days", p.HorizonDays).
		Set("excluded_dates", pq.Array(p.ExcludedDates)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": policyRowID}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}
