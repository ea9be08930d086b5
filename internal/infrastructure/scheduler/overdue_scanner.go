package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/application/lending"
	"github.com/shelfmaster/backend/internal/infrastructure/config"
)

// OverdueScanner periodically sweeps the loan ledger for overdue loans.
// Sweeps never overlap; the next sweep waits for the interval after the
// previous one completed.
type OverdueScanner struct {
	svc    *lending.OverdueScanService
	cfg    config.ScannerConfig
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueScanner creates a new overdue scanner
func NewOverdueScanner(svc *lending.OverdueScanService, cfg config.ScannerConfig, logger *zap.Logger) *OverdueScanner {
	return &OverdueScanner{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// Start launches the sweep loop. Calling Start on a running scanner is a no-op.
func (s *OverdueScanner) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Overdue scanner started",
		zap.Duration("sweep_interval", s.cfg.SweepInterval),
		zap.Duration("sweep_timeout", s.cfg.SweepTimeout),
	)

	return nil
}

// Stop stops the sweep loop, waiting for an in-flight sweep to finish
// or the given context to expire
func (s *OverdueScanner) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue scanner stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OverdueScanner) runLoop(ctx context.Context) {
	defer s.wg.Done()

	// the first sweep runs on startup; the ticker paces the rest
	s.sweep(ctx)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one pass. Stop cancels the loop context to halt the loop
// between sweeps; the sweep itself is detached from that cancellation so
// shutdown never tears out a loan halfway. Stop waits for the in-flight
// sweep to drain, bounded here by the sweep timeout.
func (s *OverdueScanner) sweep(loopCtx context.Context) {
	sweepCtx, cancel := context.WithTimeout(context.WithoutCancel(loopCtx), s.cfg.SweepTimeout)
	defer cancel()

	stats, err := s.svc.Scan(sweepCtx)
	if err != nil {
		s.logger.Error("overdue sweep failed", zap.Error(err))
		return
	}

	if stats.TotalOverdue > 0 || stats.Failed > 0 {
		s.logger.Info("overdue sweep completed",
			zap.Int("total_overdue", stats.TotalOverdue),
			zap.Int("processed", stats.Processed),
			zap.Int("failed", stats.Failed),
		)
	}
}
