package payroll

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/payroll"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Exporter renders a fully approved period into a spreadsheet
type Exporter interface {
	ExportPeriod(ctx context.Context, periodID uuid.UUID) (filename string, content []byte, err error)
}

// Mailer delivers the settlement document to the back office
type Mailer interface {
	SendPeriodReport(ctx context.Context, subject, body, filename string, attachment []byte) error
}

// NotificationService dispatches the one-time notification when every
// summary in a period reaches APPROVED: it exports the period and mails
// the document. Failures are logged, never propagated; a failed dispatch
// leaves the period unmarked so a later approval retries it.
type NotificationService struct {
	periodRepo payroll.PeriodRepository
	exporter   Exporter
	mailer     Mailer
	logger     *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(periodRepo payroll.PeriodRepository, exporter Exporter, mailer Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		periodRepo: periodRepo,
		exporter:   exporter,
		mailer:     mailer,
		logger:     logger,
	}
}

// NotifyPeriodApproved exports and mails the period report once. Safe to
// call repeatedly: the period's notified flag makes dispatch idempotent.
func (s *NotificationService) NotifyPeriodApproved(ctx context.Context, periodID uuid.UUID) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		s.logger.Error("period notification: load failed", zap.Error(err))
		return
	}
	if period.NotifiedAt != nil {
		return
	}

	filename, content, err := s.exporter.ExportPeriod(ctx, periodID)
	if err != nil {
		s.logger.Error("period notification: export failed",
			zap.String("period", period.Label()), zap.Error(err))
		return
	}

	subject := "Payroll period " + period.Label() + " fully approved"
	body := "All driver summaries for period " + period.Label() + " have been approved. The settlement report is attached."
	if err := s.mailer.SendPeriodReport(ctx, subject, body, filename, content); err != nil {
		s.logger.Error("period notification: mail failed",
			zap.String("period", period.Label()), zap.Error(err))
		return
	}

	if period.MarkNotified(time.Now()) {
		if err := s.periodRepo.Save(ctx, period); err != nil {
			s.logger.Error("period notification: flag save failed",
				zap.String("period", period.Label()), zap.Error(err))
			return
		}
	}
	s.logger.Info("period notification dispatched", zap.String("period", period.Label()))
}
