package usecase

import (
	"context"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
)

const platformNotSupportedMessage = "Payment retry is not available on this platform. Please use the mobile app."

// unsupportedRetryService is used on platforms without the processor SDK.
type unsupportedRetryService struct{}

// NewUnsupportedRetryService returns a PaymentRetryService that never retries.
func NewUnsupportedRetryService() PaymentRetryService {
	return unsupportedRetryService{}
}

func (unsupportedRetryService) RetryPayment(_ context.Context, params entity.RetryPaymentParams) (*entity.RetryPaymentResult, error) {
	return &entity.RetryPaymentResult{
		Outcome:         entity.RetryOutcomeDifferentError,
		PaymentIntentID: params.PaymentIntentID,
		ErrorType:       entity.PaymentErrorPlatformNotSupported,
		ErrorMessage:    platformNotSupportedMessage,
	}, nil
}

func (unsupportedRetryService) CanRetryPayment(context.Context, string) bool {
	return false
}
