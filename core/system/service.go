package system

import (
	"context"
	"time"
)

const DefaultHealthTimeout = 5 * time.Second

type Repository interface {
	// Health returns nil when the backend answers its health endpoint with a 2xx.
	Health(ctx context.Context, timeout time.Duration) error
}

type Service struct {
	repo    Repository
	timeout time.Duration
}

func NewService(repo Repository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultHealthTimeout
	}
	return &Service{repo: repo, timeout: timeout}
}

// Healthy never fails: any error means unhealthy.
func (svc *Service) Healthy(ctx context.Context) bool {
	return svc.repo.Health(ctx, svc.timeout) == nil
}
