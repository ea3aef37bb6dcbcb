package middleware

import (
	"sync"
	"time"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/logger"
)

// EmailRateLimiter caps how many invite emails may be sent to one recipient
// within a sliding window. This is an in-process cap on outbound mail, not
// the persistent creation quota.
type EmailRateLimiter struct {
	mu     sync.Mutex
	sends  map[string][]time.Time
	limit  int
	window time.Duration
	log    *logger.Logger
	stopCh chan struct{}
}

func NewEmailRateLimiter(limit int, window time.Duration, log *logger.Logger) *EmailRateLimiter {
	limiter := &EmailRateLimiter{
		sends:  make(map[string][]time.Time),
		limit:  limit,
		window: window,
		log:    log,
		stopCh: make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *EmailRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for email, timestamps := range rl.sends {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.sends, email)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *EmailRateLimiter) Stop() {
	close(rl.stopCh)
}

// Allow records a send for the recipient if under the limit and reports
// whether the send may proceed.
func (rl *EmailRateLimiter) Allow(email string) bool {
	if email == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.sends[email][:0:0]
	for _, ts := range rl.sends[email] {
		if now.Sub(ts) < rl.window {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rl.limit {
		rl.sends[email] = recent
		rl.log.Warn("Email send limit reached", "recipient", email, "limit", rl.limit, "window", rl.window)
		return false
	}

	rl.sends[email] = append(recent, now)
	return true
}
