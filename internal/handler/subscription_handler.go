package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-api/internal/models"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
	"github.com/noah-isme/booking-api/pkg/response"
)

type subscriptionService interface {
	ProcessPayment(ctx context.Context, payment models.SubscriptionPayment) (*models.SubscriptionPaymentResult, error)
}

// SubscriptionHandler receives the payment gateway return.
type SubscriptionHandler struct {
	service subscriptionService
}

// NewSubscriptionHandler builds a subscription handler.
func NewSubscriptionHandler(service subscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// PaymentReturn godoc
// @Summary Relay a payment gateway return to the booking backend
// @Tags Subscriptions
// @Produce json
// @Param identificadorEnlaceComercio query string true "Merchant link id"
// @Param idTransaccion query string true "Transaction id"
// @Param idEnlace query string true "Link id"
// @Param monto query string true "Amount"
// @Param hash query string true "Signature"
// @Success 200 {object} response.Envelope
// @Failure 402 {object} response.Envelope
// @Router /subscriptions/payment-return [get]
func (h *SubscriptionHandler) PaymentReturn(c *gin.Context) {
	var payment models.SubscriptionPayment
	if err := c.ShouldBindQuery(&payment); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment return"))
		return
	}
	result, err := h.service.ProcessPayment(c.Request.Context(), payment)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if !result.Active {
		status = http.StatusPaymentRequired
	}
	response.JSON(c, status, result)
}
