package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/internal/scheduling"
	"github.com/noah-isme/booking-api/pkg/datetime"
	"github.com/noah-isme/booking-api/pkg/export"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

// ExportFormat selects the rendering of an agenda export.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type agendaSlotSource interface {
	Fetch(ctx context.Context, date time.Time, userID string) ([]models.TimeSlot, error)
}

type csvRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
}

type pdfRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
}

// ExportResult is a rendered agenda ready to be served as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the daily agenda of a provider as CSV or PDF.
type ExportService struct {
	calendars calendarSnapshotter
	slots     agendaSlotSource
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(calendars calendarSnapshotter, slots agendaSlotSource, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{calendars: calendars, slots: slots, csv: csv, pdf: pdf, logger: logger}
}

// ExportAgenda lays out the business window of date in slot steps and marks which
// slots the backend still offers.
func (s *ExportService) ExportAgenda(ctx context.Context, rawDate, userID string, format ExportFormat) (*ExportResult, error) {
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	date, err := datetime.ParseDate(rawDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must use YYYY-MM-DD")
	}

	snapshot, err := s.calendars.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	offered, err := s.slots.Fetch(ctx, date, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "could not load slots from the booking backend")
	}

	sheet := buildAgendaSheet(date, snapshot, offered)

	var data []byte
	contentType := "text/csv"
	switch format {
	case ExportFormatPDF:
		data, err = s.pdf.Render(sheet)
		contentType = "application/pdf"
	default:
		data, err = s.csv.Render(sheet)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render agenda")
	}

	s.logger.Info("agenda exported", zap.String("user_id", userID), zap.String("date", datetime.FormatDate(date)), zap.String("format", string(format)))
	return &ExportResult{
		Filename:    fmt.Sprintf("agenda-%s.%s", datetime.FormatDate(date), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func buildAgendaSheet(date time.Time, snapshot *models.CalendarSnapshot, offered []models.TimeSlot) export.Sheet {
	day := datetime.FormatDate(date)
	sheet := export.Sheet{
		Title:   fmt.Sprintf("Agenda %s (%s)", day, date.Weekday()),
		Headers: []string{"Start", "End", "Status"},
	}

	check := scheduling.IsDateAvailable(date, snapshot.Config, snapshot.SpecialDates)
	var notes []string
	if !check.IsAvailable {
		notes = append(notes, check.ErrorMessage)
	}
	for _, special := range snapshot.SpecialDates {
		if datetime.DatePrefix(special.Date) == day {
			notes = append(notes, special.Title)
		}
	}
	sheet.Subtitle = strings.Join(notes, " | ")

	for _, slot := range scheduling.GenerateDaySlots(date, snapshot.Config, snapshot.SpecialDates, offered) {
		status := "available"
		if !slot.Available {
			status = "unavailable"
		}
		sheet.Rows = append(sheet.Rows, []string{slot.Start, slot.End, status})
		sheet.Muted = append(sheet.Muted, !slot.Available)
	}
	return sheet
}
