package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ServiceLimiter keeps one token bucket per upstream service so a burst of
// plan requests cannot exceed a provider's published request rate.
type ServiceLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Limit
}

type Limit struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultLimit() Limit {
	return Limit{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

func NewServiceLimiter(defaults Limit) *ServiceLimiter {
	return &ServiceLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

func NewServiceLimiterWithDefaults() *ServiceLimiter {
	return NewServiceLimiter(DefaultLimit())
}

func (s *ServiceLimiter) GetLimiter(service string) *rate.Limiter {
	s.mu.RLock()
	limiter, exists := s.limiters[service]
	s.mu.RUnlock()

	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if limiter, exists = s.limiters[service]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(s.defaults.RequestsPerSecond), s.defaults.BurstSize)
	s.limiters[service] = limiter
	return limiter
}

func (s *ServiceLimiter) SetLimit(service string, limit Limit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.limiters[service] = rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.BurstSize)
}

// Wait blocks until service may be called or ctx ends. A nil limiter never blocks.
func (s *ServiceLimiter) Wait(ctx context.Context, service string) error {
	if s == nil {
		return nil
	}
	return s.GetLimiter(service).Wait(ctx)
}
