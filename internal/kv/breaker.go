package kv

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var ErrCircuitOpen = errors.New("store circuit open")

type BreakerConfig struct {
	Name             string
	FailureThreshold int
	Timeout          time.Duration
}

// BreakerStore stops calling a failing backend after FailureThreshold
// consecutive errors and fails fast until Timeout has passed.
type BreakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[any]
}

type getResult struct {
	value string
	ok    bool
}

func NewBreaker(inner Store, cfg BreakerConfig, logger *zap.Logger) *BreakerStore {
	threshold := uint32(cfg.FailureThreshold)
	if threshold == 0 {
		threshold = 1
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("store circuit breaker state changed",
				zap.String("store", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &BreakerStore{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (b *BreakerStore) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := b.cb.Execute(func() (any, error) {
		v, ok, err := b.inner.Get(ctx, key)
		return getResult{value: v, ok: ok}, err
	})
	if err != nil {
		return "", false, mapBreakerError(err)
	}
	r := res.(getResult)
	return r.value, r.ok, nil
}

func (b *BreakerStore) Set(ctx context.Context, key, value string) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.inner.Set(ctx, key, value)
	})
	return mapBreakerError(err)
}

func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

func (b *BreakerStore) Close() error {
	return b.inner.Close()
}

func mapBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}
