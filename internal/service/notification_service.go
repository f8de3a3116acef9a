package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/morphergyx/inquiry-api/internal/config"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/morphergyx/inquiry-api/internal/logger"
	"github.com/morphergyx/inquiry-api/internal/metrics"
	"github.com/morphergyx/inquiry-api/internal/notify"
	"go.uber.org/zap"
)

// Kinds of notification dispatched for a new inquiry
const (
	DispatchConfirmation = "confirmation"
	DispatchAdminAlert   = "admin_alert"
)

// DispatchRecorder persists the outcome of a successful dispatch
type DispatchRecorder interface {
	SetEmailSent(ctx context.Context, id uuid.UUID) error
	SetAdminNotified(ctx context.Context, id uuid.UUID) error
}

// NotificationService sends the confirmation and admin emails for new
// inquiries in the background. Each dispatch is independent: a failure is
// logged and leaves its flag false.
type NotificationService struct {
	sender    notify.EmailSender
	recorder  DispatchRecorder
	cfg       config.NotificationsConfig
	publicURL string
	metrics   *metrics.Metrics
	logger    *zap.Logger

	wg sync.WaitGroup
}

func NewNotificationService(
	sender notify.EmailSender,
	recorder DispatchRecorder,
	cfg config.NotificationsConfig,
	publicURL string,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		sender:    sender,
		recorder:  recorder,
		cfg:       cfg,
		publicURL: publicURL,
		metrics:   m,
		logger:    logger,
	}
}

// InquiryCreated starts the enabled dispatches and returns immediately
func (s *NotificationService) InquiryCreated(ctx context.Context, inquiry *domain.Inquiry) {
	// detached so the dispatches outlive the request that created the inquiry
	ctx = context.WithoutCancel(ctx)

	snapshot := *inquiry
	snapshot.Notes = nil

	if s.cfg.SendConfirmation {
		s.dispatch(ctx, DispatchConfirmation, &snapshot, func() (notify.Message, error) {
			return notify.ConfirmationEmail(&snapshot, s.publicURL)
		}, s.recorder.SetEmailSent)
	} else {
		s.metrics.EmailDispatches.WithLabelValues(DispatchConfirmation, metrics.OutcomeDisabled).Inc()
	}

	if s.cfg.SendAdminNotification && s.cfg.AdminEmail != "" {
		s.dispatch(ctx, DispatchAdminAlert, &snapshot, func() (notify.Message, error) {
			return notify.AdminAlertEmail(&snapshot, s.cfg.AdminEmail)
		}, s.recorder.SetAdminNotified)
	} else {
		s.metrics.EmailDispatches.WithLabelValues(DispatchAdminAlert, metrics.OutcomeDisabled).Inc()
	}
}

// Wait blocks until every in-flight dispatch has finished
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) dispatch(
	ctx context.Context,
	kind string,
	inquiry *domain.Inquiry,
	build func() (notify.Message, error),
	record func(context.Context, uuid.UUID) error,
) {
	log := logger.WithDispatch(s.logger, inquiry.ID, kind)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("notification dispatch panicked", zap.Any("panic", rec))
				s.metrics.EmailDispatches.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
			}
		}()

		msg, err := build()
		if err == nil {
			log = log.With(logger.Recipient(msg.To))
			err = s.sender.Send(ctx, msg)
		}
		if err != nil {
			log.Error("notification dispatch failed", zap.Error(err))
			s.metrics.EmailDispatches.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
			return
		}

		s.metrics.EmailDispatches.WithLabelValues(kind, metrics.OutcomeSent).Inc()
		if err := record(ctx, inquiry.ID); err != nil {
			log.Warn("failed to record notification dispatch", zap.Error(err))
			return
		}
		log.Info("notification dispatched")
	}()
}
