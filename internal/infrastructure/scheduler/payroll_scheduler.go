package scheduler

import (
	"context"
	"sync"
	"time"

	appPayroll "github.com/fleet/backend/internal/application/payroll"
	"github.com/fleet/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// tickerInterval is the interval at which the scheduler checks for execution
const tickerInterval = 1 * time.Minute

// PayrollScheduler generates the previous month's settlements once a month,
// on the configured day of month at the configured time.
type PayrollScheduler struct {
	config      config.SchedulerConfig
	periods     *appPayroll.PeriodService
	calculation *appPayroll.CalculationService
	logger      *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewPayrollScheduler creates a new PayrollScheduler
func NewPayrollScheduler(
	cfg config.SchedulerConfig,
	periods *appPayroll.PeriodService,
	calculation *appPayroll.CalculationService,
	logger *zap.Logger,
) *PayrollScheduler {
	return &PayrollScheduler{
		config:      cfg,
		periods:     periods,
		calculation: calculation,
		logger:      logger,
	}
}

// Start starts the scheduler loop
func (s *PayrollScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Payroll scheduler started",
		zap.Int("run_day", s.config.RunDay),
		zap.Int("hour", s.config.Hour),
		zap.Int("minute", s.config.Minute),
		zap.Timep("next_run_at", s.nextRunAt),
	)
	return nil
}

// Stop stops the scheduler and waits for the loop to finish
func (s *PayrollScheduler) Stop(ctx context.Context) error {
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
		s.logger.Info("Payroll scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Payroll scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *PayrollScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(tickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runMonthlyGeneration(ctx, now)
				s.calculateNextRunTime()
			}
		}
	}
}

// shouldRun matches day-of-month, hour and minute, and guards against a
// second fire within the same day
func (s *PayrollScheduler) shouldRun(now time.Time) bool {
	if now.Day() != s.config.RunDay || now.Hour() != s.config.Hour || now.Minute() != s.config.Minute {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRunAt != nil {
		last := *s.lastRunAt
		if last.Year() == now.Year() && last.YearDay() == now.YearDay() {
			return false
		}
	}
	return true
}

func (s *PayrollScheduler) calculateNextRunTime() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), s.config.RunDay, s.config.Hour, s.config.Minute, 0, 0, now.Location())
	if now.After(next) {
		next = next.AddDate(0, 1, 0)
	}

	s.mu.Lock()
	s.nextRunAt = &next
	s.mu.Unlock()
}

// runMonthlyGeneration creates or fetches the previous month's period and
// calculates a settlement for every active driver
func (s *PayrollScheduler) runMonthlyGeneration(ctx context.Context, now time.Time) {
	s.mu.Lock()
	runAt := now
	s.lastRunAt = &runAt
	s.mu.Unlock()

	prev := now.AddDate(0, -1, 0)
	year, month := prev.Year(), int(prev.Month())

	s.logger.Info("Starting monthly payroll generation",
		zap.Int("year", year),
		zap.Int("month", month),
	)

	period, err := s.periods.GetOrCreate(ctx, year, month)
	if err != nil {
		s.logger.Error("Failed to resolve payroll period",
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Error(err),
		)
		return
	}

	if err := s.calculation.GenerateForPeriod(ctx, period.ID); err != nil {
		s.logger.Error("Monthly payroll generation failed",
			zap.String("period", period.Label()),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Monthly payroll generation finished",
		zap.String("period", period.Label()),
	)
}

// GetStatus returns the scheduler's current state for diagnostics
func (s *PayrollScheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]interface{}{
		"enabled":     s.config.Enabled,
		"is_running":  s.isRunning,
		"run_day":     s.config.RunDay,
		"hour":        s.config.Hour,
		"minute":      s.config.Minute,
		"last_run_at": s.lastRunAt,
		"next_run_at": s.nextRunAt,
	}
}
