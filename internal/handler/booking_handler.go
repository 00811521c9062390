package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-api/internal/dto"
	"github.com/noah-isme/booking-api/internal/middleware"
	"github.com/noah-isme/booking-api/internal/models"
	"github.com/noah-isme/booking-api/pkg/datetime"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
	"github.com/noah-isme/booking-api/pkg/response"
)

type availabilityChecker interface {
	Check(ctx context.Context, rawDate, clock, userID string) (*dto.AvailabilityCheckResponse, error)
}

// BookingHandler serves the public booking page: availability checks, the slot picker
// and appointment submission. Slot and submission state lives in the booking session.
type BookingHandler struct {
	availability availabilityChecker
	location     *time.Location
}

// NewBookingHandler builds a booking handler. Naive date-times are read in loc.
func NewBookingHandler(availability availabilityChecker, loc *time.Location) *BookingHandler {
	if loc == nil {
		loc = time.Local
	}
	return &BookingHandler{availability: availability, location: loc}
}

// CheckAvailability godoc
// @Summary Check a date and time against a provider calendar
// @Tags Booking
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string false "Time of day (HH:MM)"
// @Param user_id query string true "Provider id"
// @Success 200 {object} response.Envelope
// @Router /availability/check [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	result, err := h.availability.Check(c.Request.Context(), c.Query("date"), c.Query("time"), c.Query("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// ListSlots godoc
// @Summary Load the available slots of a date
// @Tags Booking
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param user_id query string false "Provider id"
// @Param X-Booking-Session header string false "Booking session id"
// @Success 200 {object} response.Envelope
// @Router /slots/{date} [get]
func (h *BookingHandler) ListSlots(c *gin.Context) {
	date, err := datetime.ParseDateIn(c.Param("date"), h.location)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must use YYYY-MM-DD"))
		return
	}
	session := middleware.MustSession(c)
	userID := c.Query("user_id")

	slots := session.Slots.LoadAvailableSlots(c.Request.Context(), date, userID)
	response.JSON(c, http.StatusOK, dto.SlotsResponse{
		Date:          datetime.FormatDate(date),
		UserID:        userID,
		Slots:         slots,
		Loading:       session.Slots.Loading(),
		Notifications: session.Notifications.Drain(),
	}, middleware.ExtractMeta(c))
}

// CreateAppointment godoc
// @Summary Submit an appointment
// @Tags Booking
// @Accept json
// @Produce json
// @Param payload body dto.AppointmentRequest true "Appointment"
// @Param X-Booking-Session header string false "Booking session id"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /appointments [post]
func (h *BookingHandler) CreateAppointment(c *gin.Context) {
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid appointment payload"))
		return
	}
	appt, err := h.toAppointment(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	session := middleware.MustSession(c)
	outcome := session.Coordinator.HandleSaveAppointment(c.Request.Context(), appt, req.UserID)
	response.JSON(c, submissionStatusCode(outcome.Status), dto.AppointmentResponse{
		Status:        outcome.Status,
		Notifications: session.Notifications.Drain(),
	}, middleware.ExtractMeta(c))
}

// CancelAppointment godoc
// @Summary Abandon the booking form
// @Tags Booking
// @Param redirect query string false "Relative path to return to"
// @Success 303
// @Router /appointments/cancel [get]
func (h *BookingHandler) CancelAppointment(c *gin.Context) {
	target := middleware.MustSession(c).Coordinator.HandleCancel()
	if redirect := c.Query("redirect"); isLocalPath(redirect) {
		target = redirect
	}
	c.Redirect(http.StatusSeeOther, target)
}

// Notifications godoc
// @Summary Collect pending notifications of the booking session
// @Tags Booking
// @Produce json
// @Param X-Booking-Session header string false "Booking session id"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *BookingHandler) Notifications(c *gin.Context) {
	response.JSON(c, http.StatusOK, middleware.MustSession(c).Notifications.Drain(), middleware.ExtractMeta(c))
}

func (h *BookingHandler) toAppointment(req dto.AppointmentRequest) (models.Appointment, error) {
	start, err := datetime.ParseWireDateTime(req.Start, h.location)
	if err != nil {
		return models.Appointment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "start must use YYYY-MM-DDTHH:MM:SS")
	}
	end, err := datetime.ParseWireDateTime(req.End, h.location)
	if err != nil {
		return models.Appointment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "end must use YYYY-MM-DDTHH:MM:SS")
	}
	status := models.AppointmentStatus(req.Status)
	if status == "" {
		status = models.AppointmentStatusPending
	}
	return models.Appointment{
		Title:       strings.TrimSpace(req.Title),
		Start:       start,
		End:         end,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Status:      status,
		PaymentType: req.PaymentType,
		Description: req.Description,
	}, nil
}

func submissionStatusCode(status models.SubmissionStatus) int {
	switch status {
	case models.SubmissionSubmitted:
		return http.StatusCreated
	case models.SubmissionSkipped:
		return http.StatusConflict
	case models.SubmissionInvalid, models.SubmissionRejected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func isLocalPath(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") && !strings.Contains(path, "\\")
}
