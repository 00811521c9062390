package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/booking-api/internal/dto"
	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/internal/scheduling"
	"github.com/noah-isme/booking-api/pkg/datetime"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type calendarRepository interface {
	GetConfig(ctx context.Context, userID string) (*models.CalendarConfig, error)
	UpsertConfig(ctx context.Context, cfg *models.CalendarConfig) error
	ListSpecialDates(ctx context.Context, userID string) ([]models.SpecialDate, error)
	CreateSpecialDate(ctx context.Context, date *models.SpecialDate) error
	DeleteSpecialDate(ctx context.Context, userID, id string) (bool, error)
}

// CalendarService manages provider calendar configurations and special dates.
type CalendarService struct {
	repo      calendarRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs the service and registers the calendar validation tags.
func NewCalendarService(repo calendarRepository, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	RegisterCalendarValidations(validate)
	return &CalendarService{repo: repo, validator: validate, logger: logger}
}

// RegisterCalendarValidations adds the clock, weekday, calendar_date and hex_color tags.
func RegisterCalendarValidations(validate *validator.Validate) {
	_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := datetime.NormalizeClock(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		day := fl.Field().Int()
		return day >= 0 && day <= 6
	})
	_ = validate.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		_, err := datetime.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
}

// GetConfig returns the configuration of a provider.
func (s *CalendarService) GetConfig(ctx context.Context, userID string) (*models.CalendarConfig, error) {
	cfg, err := s.repo.GetConfig(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "calendar configuration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calendar configuration")
	}
	return cfg, nil
}

// UpsertConfig validates and stores the configuration of a provider. Clock values are
// stored zero padded so that business-hour comparisons stay lexicographic.
func (s *CalendarService) UpsertConfig(ctx context.Context, userID string, req dto.CalendarConfigRequest) (*models.CalendarConfig, error) {
	cfg := &models.CalendarConfig{
		UserID:          userID,
		ShowWeekend:     req.ShowWeekend,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxAppointments: req.MaxAppointments,
		BusinessDays:    dedupeDays(req.BusinessDays),
		SlotMinTime:     req.SlotMinTime,
		SlotMaxTime:     req.SlotMaxTime,
		SlotDuration:    req.SlotDuration,
	}
	if err := s.validator.Struct(cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calendar configuration")
	}

	for _, clock := range []*string{&cfg.StartTime, &cfg.EndTime, &cfg.SlotMinTime, &cfg.SlotMaxTime} {
		if *clock == "" {
			continue
		}
		normalized, err := datetime.NormalizeClock(*clock)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clock value")
		}
		*clock = normalized
	}
	if cfg.StartTime > cfg.EndTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must not be after end_time")
	}
	if cfg.SlotDuration == 0 {
		cfg.SlotDuration = int(scheduling.DefaultSlotDuration / time.Minute)
	}

	if err := s.repo.UpsertConfig(ctx, cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save calendar configuration")
	}
	s.logger.Info("calendar configuration saved", zap.String("user_id", userID))
	return cfg, nil
}

// ListSpecialDates returns the special dates of a provider in insertion order.
func (s *CalendarService) ListSpecialDates(ctx context.Context, userID string) ([]models.SpecialDate, error) {
	dates, err := s.repo.ListSpecialDates(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list special dates")
	}
	if dates == nil {
		dates = []models.SpecialDate{}
	}
	return dates, nil
}

// CreateSpecialDate registers a blackout or override date.
func (s *CalendarService) CreateSpecialDate(ctx context.Context, userID string, req dto.SpecialDateRequest) (*models.SpecialDate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid special date payload")
	}
	date := &models.SpecialDate{
		UserID:      userID,
		Date:        datetime.DatePrefix(req.Date),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Color:       req.Color,
		IsAvailable: req.IsAvailable,
	}
	if err := s.repo.CreateSpecialDate(ctx, date); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create special date")
	}
	return date, nil
}

// DeleteSpecialDate removes a special date of the provider.
func (s *CalendarService) DeleteSpecialDate(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.DeleteSpecialDate(ctx, userID, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete special date")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "special date not found")
	}
	return nil
}

// Snapshot loads the configuration and special dates of a provider together.
func (s *CalendarService) Snapshot(ctx context.Context, userID string) (*models.CalendarSnapshot, error) {
	cfg, err := s.GetConfig(ctx, userID)
	if err != nil {
		return nil, err
	}
	dates, err := s.ListSpecialDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.CalendarSnapshot{Config: *cfg, SpecialDates: dates}, nil
}

func dedupeDays(days []int) []int {
	seen := make(map[int]struct{}, len(days))
	result := make([]int, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		result = append(result, d)
	}
	return result
}
