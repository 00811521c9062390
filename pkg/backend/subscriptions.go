package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/noah-isme/booking-api/internal/models"
)

// SubscriptionPaymentPath relays payment gateway callbacks to the backend.
const SubscriptionPaymentPath = "/subscriptions/process-payment"

// ProcessSubscriptionPayment forwards the gateway values verbatim. A 4xx answer is
// reported as an inactive subscription carrying the backend message; transport failures
// and 5xx answers are returned as errors.
func (c *Client) ProcessSubscriptionPayment(ctx context.Context, payment models.SubscriptionPayment) (*models.SubscriptionPaymentResult, error) {
	raw, err := c.do(ctx, "process_subscription_payment", http.MethodPost, SubscriptionPaymentPath, payment)
	if err == nil {
		result := &models.SubscriptionPaymentResult{Active: true}
		var body struct {
			Message string `json:"message"`
		}
		if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
			result.Message = body.Message
		}
		return result, nil
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode >= http.StatusInternalServerError {
		return nil, err
	}
	result := &models.SubscriptionPaymentResult{Active: false}
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(statusErr.Body, &body) == nil {
		result.Message = body.Message
	}
	return result, nil
}
