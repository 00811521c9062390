package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/booking-api/internal/models"
	appErrors "github.com/noah-isme/booking-api/pkg/errors"
)

type subscriptionProcessor interface {
	ProcessSubscriptionPayment(ctx context.Context, payment models.SubscriptionPayment) (*models.SubscriptionPaymentResult, error)
}

// SubscriptionService relays payment gateway returns to the booking backend.
type SubscriptionService struct {
	processor subscriptionProcessor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(processor subscriptionProcessor, validate *validator.Validate, logger *zap.Logger) *SubscriptionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{processor: processor, validator: validate, logger: logger}
}

// ProcessPayment forwards the gateway values verbatim. A rejected payment is a result,
// not an error; errors mean the request was incomplete or the backend was unreachable.
func (s *SubscriptionService) ProcessPayment(ctx context.Context, payment models.SubscriptionPayment) (*models.SubscriptionPaymentResult, error) {
	if err := s.validator.Struct(payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "incomplete payment return")
	}

	result, err := s.processor.ProcessSubscriptionPayment(ctx, payment)
	if err != nil {
		s.logger.Error("subscription payment relay failed", zap.String("transaction_id", payment.IdTransaccion), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	if !result.Active {
		s.logger.Warn("subscription payment rejected", zap.String("transaction_id", payment.IdTransaccion), zap.String("message", result.Message))
	}
	return result, nil
}
