package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Flushable is a store whose mirror write can fail and be retried later.
type Flushable interface {
	Dirty() bool
	Flush(ctx context.Context) error
}

// Flusher retries failed mirror writes on a fixed interval.
type Flusher struct {
	target   Flushable
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
	once     sync.Once
}

func NewFlusher(target Flushable, logger *zap.Logger, interval time.Duration) *Flusher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Flusher{
		target:   target,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (f *Flusher) Start(ctx context.Context) {
	f.logger.Info("Starting flusher", zap.Duration("interval", f.interval))
	f.wg.Add(1)
	go f.run(ctx)
}

// Stop waits for the loop to exit and then makes one last attempt, so a
// clean shutdown does not lose a pending write.
func (f *Flusher) Stop(ctx context.Context) {
	f.once.Do(func() {
		f.logger.Info("Stopping flusher...")
		close(f.stop)
		f.wg.Wait()
		f.flush(ctx)
		f.logger.Info("Flusher stopped")
	})
}

func (f *Flusher) run(ctx context.Context) {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.flush(ctx)
		}
	}
}

func (f *Flusher) flush(ctx context.Context) {
	if !f.target.Dirty() {
		return
	}
	if err := f.target.Flush(ctx); err != nil {
		f.logger.Error("flush failed", zap.Error(err))
	}
}
