package usecase

import "sync"

// retryLocks holds the payment intents that have a retry in flight in this process.
type retryLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func newRetryLocks() *retryLocks {
	return &retryLocks{held: make(map[string]struct{})}
}

// tryAcquire returns false when a retry for the intent is already running.
func (l *retryLocks) tryAcquire(paymentIntentID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[paymentIntentID]; ok {
		return false
	}
	l.held[paymentIntentID] = struct{}{}
	return true
}

func (l *retryLocks) release(paymentIntentID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, paymentIntentID)
}
