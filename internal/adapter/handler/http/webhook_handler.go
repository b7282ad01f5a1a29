package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
	stripeProvider "github.com/wekeepgrowing/payment-recovery/internal/infrastructure/provider/stripe"
	"github.com/wekeepgrowing/payment-recovery/internal/usecase"
	"go.uber.org/zap"
)

// Payment intent metadata keys set by the app when the goal is funded.
const (
	metadataGoalID = "goal_id"
	metadataUserID = "user_id"
)

// PaymentFailureRecorder is the write side of the attempt ledger
type PaymentFailureRecorder interface {
	CreatePaymentAttempt(ctx context.Context, params usecase.CreatePaymentAttemptParams) *model.PaymentAttempt
	MarkGoalPaymentFailed(ctx context.Context, goalID string) bool
}

type WebhookHandler struct {
	logger        *zap.Logger
	webhookSecret string
	ledger        PaymentFailureRecorder
}

func NewWebhookHandler(logger *zap.Logger, webhookSecret string, ledger PaymentFailureRecorder) *WebhookHandler {
	return &WebhookHandler{
		logger:        logger,
		webhookSecret: webhookSecret,
		ledger:        ledger,
	}
}

// HandleWebhook handles POST /webhook from Stripe
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		h.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Webhook signature verification failed",
		})
	}

	h.logger.Info("Webhook event received",
		zap.String("type", string(event.Type)),
		zap.String("id", event.ID),
		zap.Time("created", time.Unix(event.Created, 0)),
	)

	switch event.Type {
	case stripe.EventTypePaymentIntentPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			h.logger.Error("Error parsing payment intent", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
		}
		h.handlePaymentFailed(c.Request().Context(), &pi)
	default:
		h.logger.Debug("Unhandled webhook event type", zap.String("type", string(event.Type)))
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

// handlePaymentFailed records the first failure of a payment intent. Intents created
// outside the app carry no user_id and are ignored.
func (h *WebhookHandler) handlePaymentFailed(ctx context.Context, pi *stripe.PaymentIntent) {
	userID := pi.Metadata[metadataUserID]
	goalID := pi.Metadata[metadataGoalID]
	if userID == "" {
		h.logger.Warn("Payment failure without user metadata",
			zap.String("payment_intent_id", pi.ID))
		return
	}

	params := usecase.CreatePaymentAttemptParams{
		GoalID:          goalID,
		UserID:          userID,
		PaymentIntentID: pi.ID,
		Error:           stripeProvider.ToProcessorError(pi.LastPaymentError),
		Amount:          pi.Amount,
		Currency:        string(pi.Currency),
	}
	if lastErr := pi.LastPaymentError; lastErr != nil && lastErr.PaymentMethod != nil && lastErr.PaymentMethod.Card != nil {
		params.CardLast4 = lastErr.PaymentMethod.Card.Last4
		params.CardBrand = string(lastErr.PaymentMethod.Card.Brand)
	}

	h.ledger.CreatePaymentAttempt(ctx, params)

	if goalID != "" {
		h.ledger.MarkGoalPaymentFailed(ctx, goalID)
	}
}
