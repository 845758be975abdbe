package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/failsafe-go/failsafe-go/timeout"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/models"
)

// ResilienceOptions configures the per-provider execution policies.
type ResilienceOptions struct {
	Timeout    time.Duration // per attempt, 0 disables
	MaxRetries int
	RetryDelay time.Duration // initial backoff delay, 0 retries immediately
}

type resilientProvider struct {
	inner    Provider
	executor failsafe.Executor[[]models.Subtitle]
}

// WithResilience wraps a provider so every search runs under a retry policy
// for transient failures and a per-attempt timeout.
func WithResilience(p Provider, opts ResilienceOptions) Provider {
	logger := config.GetLogger()
	name := p.Name().String()

	retry := retrypolicy.NewBuilder[[]models.Subtitle]().
		HandleIf(func(_ []models.Subtitle, err error) bool {
			return IsTransient(err)
		}).
		WithMaxRetries(opts.MaxRetries).
		ReturnLastFailure().
		OnRetry(func(e failsafe.ExecutionEvent[[]models.Subtitle]) {
			logger.Debug().Err(e.LastError()).Str("provider", name).Int("attempt", e.Attempts()).Msg("Retrying provider search")
		})
	if opts.RetryDelay > 0 {
		retry = retry.WithBackoff(opts.RetryDelay, 8*opts.RetryDelay)
	}

	policies := []failsafe.Policy[[]models.Subtitle]{retry.Build()}
	if opts.Timeout > 0 {
		// Innermost, so each attempt gets its own deadline
		policies = append(policies, timeout.New[[]models.Subtitle](opts.Timeout))
	}

	return &resilientProvider{
		inner:    p,
		executor: failsafe.NewExecutor[[]models.Subtitle](policies...),
	}
}

func (r *resilientProvider) Name() models.Source {
	return r.inner.Name()
}

func (r *resilientProvider) Search(ctx context.Context, req models.SearchRequest) ([]models.Subtitle, error) {
	return r.executor.WithContext(ctx).GetWithExecution(func(exec failsafe.Execution[[]models.Subtitle]) ([]models.Subtitle, error) {
		return r.inner.Search(exec.Context(), req)
	})
}

// IsTransient reports whether a provider error is worth retrying: rate
// limiting, server side failures, timeouts and network errors.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, &apperrors.ErrProviderNotConfigured{}) {
		return false
	}

	var status *apperrors.ErrProviderStatus
	if errors.As(err, &status) {
		return status.StatusCode == http.StatusTooManyRequests || status.StatusCode >= http.StatusInternalServerError
	}
	if errors.Is(err, timeout.ErrExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
