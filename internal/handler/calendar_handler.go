package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-api/internal/dto"
	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/internal/service"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
	"github.com/noah-isme/booking-api/pkg/response"
)

type calendarService interface {
	GetConfig(ctx context.Context, userID string) (*models.CalendarConfig, error)
	UpsertConfig(ctx context.Context, userID string, req dto.CalendarConfigRequest) (*models.CalendarConfig, error)
	ListSpecialDates(ctx context.Context, userID string) ([]models.SpecialDate, error)
	CreateSpecialDate(ctx context.Context, userID string, req dto.SpecialDateRequest) (*models.SpecialDate, error)
	DeleteSpecialDate(ctx context.Context, userID, id string) error
}

type agendaExporter interface {
	ExportAgenda(ctx context.Context, rawDate, userID string, format service.ExportFormat) (*service.ExportResult, error)
}

// CalendarHandler exposes the provider calendar administration endpoints.
type CalendarHandler struct {
	calendars calendarService
	exporter  agendaExporter
}

// NewCalendarHandler builds a calendar handler.
func NewCalendarHandler(calendars calendarService, exporter agendaExporter) *CalendarHandler {
	return &CalendarHandler{calendars: calendars, exporter: exporter}
}

// GetConfig godoc
// @Summary Get a provider calendar configuration
// @Tags Calendar
// @Produce json
// @Param userId path string true "Provider id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /calendar/config/{userId} [get]
func (h *CalendarHandler) GetConfig(c *gin.Context) {
	cfg, err := h.calendars.GetConfig(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}

// UpsertConfig godoc
// @Summary Save a provider calendar configuration
// @Tags Calendar
// @Accept json
// @Produce json
// @Param userId path string true "Provider id"
// @Param payload body dto.CalendarConfigRequest true "Calendar configuration"
// @Success 200 {object} response.Envelope
// @Router /calendar/config/{userId} [put]
func (h *CalendarHandler) UpsertConfig(c *gin.Context) {
	var req dto.CalendarConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid calendar configuration payload"))
		return
	}
	cfg, err := h.calendars.UpsertConfig(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}

// ListSpecialDates godoc
// @Summary List special dates
// @Tags Calendar
// @Produce json
// @Param user_id query string false "Provider id (admins only)"
// @Success 200 {object} response.Envelope
// @Router /calendar/special-dates [get]
func (h *CalendarHandler) ListSpecialDates(c *gin.Context) {
	owner, err := calendarOwner(c, c.Query("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	dates, err := h.calendars.ListSpecialDates(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dates)
}

// CreateSpecialDate godoc
// @Summary Register a special date
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body dto.SpecialDateRequest true "Special date"
// @Success 201 {object} response.Envelope
// @Router /calendar/special-dates [post]
func (h *CalendarHandler) CreateSpecialDate(c *gin.Context) {
	var req dto.SpecialDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid special date payload"))
		return
	}
	owner, err := calendarOwner(c, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	date, err := h.calendars.CreateSpecialDate(c.Request.Context(), owner, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, date)
}

// DeleteSpecialDate godoc
// @Summary Remove a special date
// @Tags Calendar
// @Param id path string true "Special date id"
// @Param user_id query string false "Provider id (admins only)"
// @Success 204
// @Router /calendar/special-dates/{id} [delete]
func (h *CalendarHandler) DeleteSpecialDate(c *gin.Context) {
	owner, err := calendarOwner(c, c.Query("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.calendars.DeleteSpecialDate(c.Request.Context(), owner, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportAgenda godoc
// @Summary Download the agenda of a day
// @Tags Calendar
// @Produce text/csv
// @Produce application/pdf
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param format query string false "csv or pdf"
// @Param user_id query string false "Provider id (admins only)"
// @Success 200 {file} file
// @Router /calendar/agenda/{date}/export [get]
func (h *CalendarHandler) ExportAgenda(c *gin.Context) {
	owner, err := calendarOwner(c, c.Query("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exporter.ExportAgenda(c.Request.Context(), c.Param("date"), owner, service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV))))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Data)
}
