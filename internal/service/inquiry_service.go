package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/morphergyx/inquiry-api/internal/auth"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/morphergyx/inquiry-api/internal/logger"
	"github.com/morphergyx/inquiry-api/internal/mapper"
	"github.com/morphergyx/inquiry-api/internal/metrics"
	"github.com/morphergyx/inquiry-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecentWindow is the trailing period counted as "recent" in stats
const RecentWindow = 7 * 24 * time.Hour

// CreationHook is told about every inquiry after it has been persisted
type CreationHook interface {
	InquiryCreated(ctx context.Context, inquiry *domain.Inquiry)
}

type InquiryService struct {
	inquiryRepo *repository.InquiryRepository
	hook        CreationHook
	admin       domain.AdminIdentity
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

func NewInquiryService(
	inquiryRepo *repository.InquiryRepository,
	hook CreationHook,
	admin domain.AdminIdentity,
	m *metrics.Metrics,
	logger *zap.Logger,
) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		hook:        hook,
		admin:       admin,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Create validates and stores a public submission, then hands the stored
// record to the creation hook. Hook outcomes never affect the result.
func (s *InquiryService) Create(ctx context.Context, req *domain.CreateInquiryRequest) (*domain.InquiryDTO, error) {
	inquiry := &domain.Inquiry{
		Company:   req.Company,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Interest:  req.Interest,
		Volume:    req.Volume,
		Message:   req.Message,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}
	inquiry.ApplyDefaults()
	inquiry.Normalize()
	if err := inquiry.Validate(); err != nil {
		return nil, err
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	s.metrics.InquiriesCreated.WithLabelValues(string(inquiry.Interest)).Inc()
	logger.WithInquiry(s.logger, inquiry.ID).Info("inquiry created",
		zap.String("interest", string(inquiry.Interest)),
		zap.String("priority", string(inquiry.Priority)),
	)

	if s.hook != nil {
		s.hook.InquiryCreated(ctx, inquiry)
	}

	dto := mapper.ToInquiryDTO(inquiry, s.resolveAdmin, s.now())
	return &dto, nil
}

// GetByID returns the full record with resolved admin references
func (s *InquiryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InquiryDTO, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "failed to get inquiry")
	}

	dto := mapper.ToInquiryDTO(inquiry, s.resolveAdmin, s.now())
	return &dto, nil
}

// List returns a page of inquiries; absent filter values place no constraint
func (s *InquiryService) List(ctx context.Context, filter domain.InquiryFilter) (*domain.PaginatedResponse, error) {
	filter.Normalize()

	inquiries, total, err := s.inquiryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	return &domain.PaginatedResponse{
		Data: mapper.ToInquiryDTOs(inquiries, s.resolveAdmin, s.now()),
		Pagination: domain.Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

// Update applies the admin-editable fields. Anything else in the request
// never reaches the store.
func (s *InquiryService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInquiryRequest) (*domain.InquiryDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.AssignedTo != nil {
		if assignee := strings.TrimSpace(*req.AssignedTo); assignee != "" {
			updates["assigned_to"] = assignee
		} else {
			updates["assigned_to"] = nil
		}
	}
	if req.FollowUpDate != nil {
		updates["follow_up_date"] = req.FollowUpDate.UTC()
	}

	if len(updates) > 0 {
		if err := s.inquiryRepo.UpdateFields(ctx, id, updates); err != nil {
			return nil, translateNotFound(err, "failed to update inquiry")
		}
		logger.WithInquiry(s.logger, id).Info("inquiry updated", zap.Int("fields", len(updates)))
	}

	return s.GetByID(ctx, id)
}

// AddNote appends a note authored by the authenticated admin, if any
func (s *InquiryService) AddNote(ctx context.Context, id uuid.UUID, text string) (*domain.InquiryDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "Note text is required")
	}

	note := &domain.InquiryNote{
		Text:    text,
		AddedBy: auth.ActorID(ctx),
		AddedAt: s.now().UTC(),
	}
	if err := s.inquiryRepo.AppendNote(ctx, id, note); err != nil {
		return nil, translateNotFound(err, "failed to add note")
	}
	s.metrics.NotesAdded.Inc()

	return s.GetByID(ctx, id)
}

// Delete permanently removes an inquiry and its notes
func (s *InquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		return translateNotFound(err, "failed to delete inquiry")
	}
	logger.WithInquiry(s.logger, id).Info("inquiry deleted")
	return nil
}

// Stats aggregates the dashboard counters
func (s *InquiryService) Stats(ctx context.Context) (*domain.InquiryStatsDTO, error) {
	var stats domain.InquiryStatsDTO
	var err error

	if stats.Total, err = s.inquiryRepo.Count(ctx, domain.InquiryFilter{}); err != nil {
		return nil, fmt.Errorf("failed to count inquiries: %w", err)
	}
	if stats.New, err = s.inquiryRepo.CountByStatus(ctx, domain.StatusNew); err != nil {
		return nil, fmt.Errorf("failed to count new inquiries: %w", err)
	}
	if stats.InProgress, err = s.inquiryRepo.CountByStatus(ctx, domain.StatusInProgress); err != nil {
		return nil, fmt.Errorf("failed to count in-progress inquiries: %w", err)
	}
	if stats.Converted, err = s.inquiryRepo.CountByStatus(ctx, domain.StatusConverted); err != nil {
		return nil, fmt.Errorf("failed to count converted inquiries: %w", err)
	}
	if stats.RecentWeek, err = s.inquiryRepo.CountCreatedSince(ctx, s.now().UTC().Add(-RecentWindow)); err != nil {
		return nil, fmt.Errorf("failed to count recent inquiries: %w", err)
	}

	byInterest, err := s.inquiryRepo.GroupCountBy(ctx, "interest")
	if err != nil {
		return nil, err
	}
	byStatus, err := s.inquiryRepo.GroupCountBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	stats.ByInterest = toGroupCountDTOs(byInterest)
	stats.ByStatus = toGroupCountDTOs(byStatus)

	return &stats, nil
}

func (s *InquiryService) resolveAdmin(id string) *domain.AdminIdentity {
	if id == s.admin.ID {
		admin := s.admin
		return &admin
	}
	return nil
}

func toGroupCountDTOs(groups []repository.GroupCount) []domain.GroupCountDTO {
	dtos := make([]domain.GroupCountDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, domain.GroupCountDTO{Key: g.Key, Count: g.Count})
	}
	return dtos
}

func translateNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInquiryNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
