package jobs

import (
	"context"
	"time"

	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/morphergyx/inquiry-api/internal/metrics"
	"github.com/morphergyx/inquiry-api/internal/notify"
	"go.uber.org/zap"
)

// FollowUpReminderJobName is the scheduler name of the follow-up digest job
const FollowUpReminderJobName = "follow_up_reminder"

// MaxDigestItems caps how many inquiries one digest lists
const MaxDigestItems = 100

// DueFollowUpLister finds open inquiries whose follow-up date has passed
type DueFollowUpLister interface {
	ListDueFollowUps(ctx context.Context, before time.Time, limit int) ([]domain.Inquiry, error)
}

// FollowUpReminderJob emails the admin a digest of open inquiries that are
// due for follow-up. Nothing is sent when none are due.
type FollowUpReminderJob struct {
	inquiries  DueFollowUpLister
	sender     notify.EmailSender
	adminEmail string
	metrics    *metrics.Metrics
	logger     *zap.Logger
	timeout    time.Duration
	now        func() time.Time
}

func NewFollowUpReminderJob(
	inquiries DueFollowUpLister,
	sender notify.EmailSender,
	adminEmail string,
	m *metrics.Metrics,
	logger *zap.Logger,
	timeout time.Duration,
) *FollowUpReminderJob {
	return &FollowUpReminderJob{
		inquiries:  inquiries,
		sender:     sender,
		adminEmail: adminEmail,
		metrics:    m,
		logger:     logger,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Run is invoked by the scheduler. It returns how many inquiries were listed
// in the digest; errors are logged only.
func (j *FollowUpReminderJob) Run() int {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	due, err := j.inquiries.ListDueFollowUps(ctx, j.now().UTC(), MaxDigestItems)
	if err != nil {
		j.logger.Error("failed to load due follow-ups", zap.Error(err))
		return 0
	}
	if len(due) == 0 {
		j.logger.Debug("no inquiries due for follow-up")
		return 0
	}

	msg, err := notify.FollowUpDigestEmail(due, j.adminEmail)
	if err != nil {
		j.logger.Error("failed to render follow-up digest", zap.Error(err))
		return 0
	}

	if err := j.sender.Send(ctx, msg); err != nil {
		j.metrics.EmailDispatches.WithLabelValues(FollowUpReminderJobName, metrics.OutcomeFailed).Inc()
		j.logger.Error("failed to send follow-up digest",
			zap.Int("inquiries", len(due)),
			zap.Error(err))
		return 0
	}

	j.metrics.EmailDispatches.WithLabelValues(FollowUpReminderJobName, metrics.OutcomeSent).Inc()
	j.metrics.FollowUpReminders.Add(float64(len(due)))
	j.logger.Info("follow-up digest sent",
		zap.Int("inquiries", len(due)),
		zap.Duration("duration", time.Since(start)))

	return len(due)
}

// RegisterFollowUpReminderJob adds the digest job to the scheduler
func RegisterFollowUpReminderJob(scheduler *Scheduler, job *FollowUpReminderJob, cronExpr string) error {
	return scheduler.AddJob(FollowUpReminderJobName, cronExpr, func() { job.Run() })
}
