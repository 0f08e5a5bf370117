package rate_limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out one token bucket per client address.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	rps      rate.Limit
	burst    int
}

func New(rps float64, burst int) *Limiter {
	return &Limiter{
		visitors: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *Limiter) GetVisitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(l.rps, l.burst)
		l.visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// Allow reports whether the client at ip may make a request now.
func (l *Limiter) Allow(ip string) bool {
	return l.GetVisitor(ip).Allow()
}

// CleanupIdle forgets visitors not seen for longer than idle.
func (l *Limiter) CleanupIdle(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, v := range l.visitors {
		if time.Since(v.lastSeen) > idle {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// StartVisitorCleanupLoop runs CleanupIdle every interval until ctx is done.
func (l *Limiter) StartVisitorCleanupLoop(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.CleanupIdle(idle)
		}
	}
}

// CleanupAllVisitors resets every client bucket.
func (l *Limiter) CleanupAllVisitors() {
	l.mu.Lock()
	l.visitors = make(map[string]*clientLimiter)
	l.mu.Unlock()
}
