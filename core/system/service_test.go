package system

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type repoMock struct {
	err     error
	timeout time.Duration
}

func (r *repoMock) Health(_ context.Context, timeout time.Duration) error {
	r.timeout = timeout
	return r.err
}

func TestService_Healthy(t *testing.T) {
	tests := []struct {
		name        string
		timeout     time.Duration
		err         error
		want        bool
		wantTimeout time.Duration
	}{
		{name: "healthy", timeout: time.Second, want: true, wantTimeout: time.Second},
		{name: "unhealthy", timeout: time.Second, err: errors.New("503"), wantTimeout: time.Second},
		{name: "default timeout", want: true, wantTimeout: DefaultHealthTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &repoMock{err: tt.err}
			svc := NewService(repo, tt.timeout)
			assert.Equal(t, tt.want, svc.Healthy(context.Background()))
			assert.Equal(t, tt.wantTimeout, repo.timeout)
		})
	}
}
