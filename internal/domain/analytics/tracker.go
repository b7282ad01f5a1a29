// Package analytics defines the fire-and-forget product analytics sink.
package analytics

// Event names emitted by the payment recovery flow.
const (
	EventPaymentFailed       = "payment_failed"
	EventPaymentRetryStarted = "payment_retry_started"
	EventPaymentRetrySuccess = "payment_retry_success"
	EventPaymentRetryFailed  = "payment_retry_failed"
)

// Properties are the event attributes. Values must be JSON serialisable.
type Properties map[string]interface{}

// Tracker records an analytics event. Implementations must not block the caller
// and must never fail it.
type Tracker interface {
	Track(event string, props Properties)
}
