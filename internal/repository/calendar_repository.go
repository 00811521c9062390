package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/booking-api/internal/models"
)

// CalendarRepository persists provider calendar configurations and special dates.
type CalendarRepository struct {
	db *sqlx.DB
}

// NewCalendarRepository constructs a calendar repository.
func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

type calendarConfigRow struct {
	UserID          string        `db:"user_id"`
	ShowWeekend     bool          `db:"show_weekend"`
	StartTime       string        `db:"start_time"`
	EndTime         string        `db:"end_time"`
	MaxAppointments int           `db:"max_appointments"`
	BusinessDays    pq.Int64Array `db:"business_days"`
	SlotMinTime     string        `db:"slot_min_time"`
	SlotMaxTime     string        `db:"slot_max_time"`
	SlotDuration    int           `db:"slot_duration"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

func (r calendarConfigRow) toModel() *models.CalendarConfig {
	days := make([]int, len(r.BusinessDays))
	for i, d := range r.BusinessDays {
		days[i] = int(d)
	}
	return &models.CalendarConfig{
		UserID:          r.UserID,
		ShowWeekend:     r.ShowWeekend,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		MaxAppointments: r.MaxAppointments,
		BusinessDays:    days,
		SlotMinTime:     r.SlotMinTime,
		SlotMaxTime:     r.SlotMaxTime,
		SlotDuration:    r.SlotDuration,
		UpdatedAt:       r.UpdatedAt,
	}
}

func configRow(cfg *models.CalendarConfig) calendarConfigRow {
	days := make(pq.Int64Array, len(cfg.BusinessDays))
	for i, d := range cfg.BusinessDays {
		days[i] = int64(d)
	}
	return calendarConfigRow{
		UserID:          cfg.UserID,
		ShowWeekend:     cfg.ShowWeekend,
		StartTime:       cfg.StartTime,
		EndTime:         cfg.EndTime,
		MaxAppointments: cfg.MaxAppointments,
		BusinessDays:    days,
		SlotMinTime:     cfg.SlotMinTime,
		SlotMaxTime:     cfg.SlotMaxTime,
		SlotDuration:    cfg.SlotDuration,
		UpdatedAt:       cfg.UpdatedAt,
	}
}

// GetConfig returns the calendar configuration of a provider.
func (r *CalendarRepository) GetConfig(ctx context.Context, userID string) (*models.CalendarConfig, error) {
	const query = `SELECT user_id, show_weekend, start_time, end_time, max_appointments, business_days, slot_min_time, slot_max_time, slot_duration, updated_at
FROM calendar_configs WHERE user_id = $1`
	var row calendarConfigRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// UpsertConfig inserts or replaces the configuration of a provider.
func (r *CalendarRepository) UpsertConfig(ctx context.Context, cfg *models.CalendarConfig) error {
	cfg.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO calendar_configs (user_id, show_weekend, start_time, end_time, max_appointments, business_days, slot_min_time, slot_max_time, slot_duration, updated_at)
VALUES (:user_id, :show_weekend, :start_time, :end_time, :max_appointments, :business_days, :slot_min_time, :slot_max_time, :slot_duration, :updated_at)
ON CONFLICT (user_id)
DO UPDATE SET show_weekend = EXCLUDED.show_weekend, start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
              max_appointments = EXCLUDED.max_appointments, business_days = EXCLUDED.business_days,
              slot_min_time = EXCLUDED.slot_min_time, slot_max_time = EXCLUDED.slot_max_time,
              slot_duration = EXCLUDED.slot_duration, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, configRow(cfg)); err != nil {
		return fmt.Errorf("upsert calendar config: %w", err)
	}
	return nil
}

// ListSpecialDates returns the special dates of a provider in insertion order.
func (r *CalendarRepository) ListSpecialDates(ctx context.Context, userID string) ([]models.SpecialDate, error) {
	const query = `SELECT id, user_id, date, title, description, color, is_available, created_at
FROM special_dates WHERE user_id = $1 ORDER BY created_at ASC, id ASC`
	var dates []models.SpecialDate
	if err := r.db.SelectContext(ctx, &dates, query, userID); err != nil {
		return nil, fmt.Errorf("list special dates: %w", err)
	}
	return dates, nil
}

// CreateSpecialDate inserts a special date.
func (r *CalendarRepository) CreateSpecialDate(ctx context.Context, date *models.SpecialDate) error {
	if date.ID == "" {
		date.ID = uuid.NewString()
	}
	if date.CreatedAt.IsZero() {
		date.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO special_dates (id, user_id, date, title, description, color, is_available, created_at)
VALUES (:id, :user_id, :date, :title, :description, :color, :is_available, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, date); err != nil {
		return fmt.Errorf("create special date: %w", err)
	}
	return nil
}

// DeleteSpecialDate removes a special date owned by userID. It reports whether a row
// was deleted.
func (r *CalendarRepository) DeleteSpecialDate(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM special_dates WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, fmt.Errorf("delete special date: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete special date: %w", err)
	}
	return affected > 0, nil
}
