package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/entity"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
	"github.com/wekeepgrowing/payment-recovery/internal/middleware/auth"
	"github.com/wekeepgrowing/payment-recovery/internal/usecase"
	pkgerrors "github.com/wekeepgrowing/payment-recovery/pkg/errors"
	"go.uber.org/zap"
)

const maxAttemptListLimit = 100

// PaymentAttemptReader is the read side of the attempt ledger
type PaymentAttemptReader interface {
	GetPaymentAttemptsForGoal(ctx context.Context, goalID string) []model.PaymentAttempt
	GetPaymentAttemptsForUser(ctx context.Context, userID string, limit int) []model.PaymentAttempt
	GetPaymentAttemptCountForGoal(ctx context.Context, goalID string) int
}

type PaymentHandler struct {
	retryService usecase.PaymentRetryService
	attempts     PaymentAttemptReader
	maxAttempts  int
	logger       *zap.Logger
}

func NewPaymentHandler(retryService usecase.PaymentRetryService, attempts PaymentAttemptReader, maxAttempts int, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		retryService: retryService,
		attempts:     attempts,
		maxAttempts:  maxAttempts,
		logger:       logger,
	}
}

// RetryPayment handles POST /api/v1/payments/retry
func (h *PaymentHandler) RetryPayment(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var params entity.RetryPaymentParams
	if err := c.Bind(&params); err != nil {
		return pkgerrors.ToHTTPError(pkgerrors.InvalidArgument("Invalid request body", err))
	}
	if err := c.Validate(&params); err != nil {
		return pkgerrors.ToHTTPError(err)
	}
	params.UserID = user.UserID

	result, err := h.retryService.RetryPayment(c.Request().Context(), params)
	if err != nil {
		appErr := pkgerrors.NewAppError(pkgerrors.ErrUnavailable, "Payment retry is temporarily unavailable", err)
		pkgerrors.LogError(h.logger, appErr, "Payment retry failed",
			zap.String("payment_intent_id", params.PaymentIntentID),
			zap.String("user_id", user.UserID))
		return pkgerrors.ToHTTPError(appErr)
	}

	return c.JSON(http.StatusOK, result)
}

// GetRetryEligibility handles GET /api/v1/goals/:goalId/retry-eligibility
func (h *PaymentHandler) GetRetryEligibility(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	goalID := c.Param("goalId")
	ctx := c.Request().Context()

	return c.JSON(http.StatusOK, entity.RetryEligibility{
		GoalID:       goalID,
		CanRetry:     h.retryService.CanRetryPayment(ctx, goalID),
		AttemptCount: h.attempts.GetPaymentAttemptCountForGoal(ctx, goalID),
		MaxAttempts:  h.maxAttempts,
	})
}

// GetGoalPaymentAttempts handles GET /api/v1/goals/:goalId/payment-attempts.
// Only the caller's own attempts are returned.
func (h *PaymentHandler) GetGoalPaymentAttempts(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	goalID := c.Param("goalId")
	all := h.attempts.GetPaymentAttemptsForGoal(c.Request().Context(), goalID)

	attempts := make([]model.PaymentAttempt, 0, len(all))
	for _, a := range all {
		if a.UserID == user.UserID {
			attempts = append(attempts, a)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"goal_id":  goalID,
		"attempts": attempts,
		"count":    len(attempts),
	})
}

// GetUserPaymentAttempts handles GET /api/v1/payments/attempts?limit=
func (h *PaymentHandler) GetUserPaymentAttempts(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return pkgerrors.ToHTTPError(pkgerrors.InvalidArgument("limit must be a non-negative integer", err))
		}
		if limit > maxAttemptListLimit {
			limit = maxAttemptListLimit
		}
	}

	attempts := h.attempts.GetPaymentAttemptsForUser(c.Request().Context(), user.UserID, limit)

	h.logger.Debug("Retrieved user payment attempts",
		zap.String("user_id", user.UserID),
		zap.Int("count", len(attempts)))

	return c.JSON(http.StatusOK, echo.Map{
		"attempts": attempts,
		"count":    len(attempts),
	})
}
