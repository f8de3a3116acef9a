package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/morphergyx/inquiry-api/internal/http/middleware"
	"github.com/morphergyx/inquiry-api/internal/logger"
	"github.com/morphergyx/inquiry-api/internal/mapper"
	"github.com/morphergyx/inquiry-api/internal/service"
	"go.uber.org/zap"
)

// InquiryService is the lifecycle surface the handler depends on
type InquiryService interface {
	Create(ctx context.Context, req *domain.CreateInquiryRequest) (*domain.InquiryDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InquiryDTO, error)
	List(ctx context.Context, filter domain.InquiryFilter) (*domain.PaginatedResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInquiryRequest) (*domain.InquiryDTO, error)
	AddNote(ctx context.Context, id uuid.UUID, text string) (*domain.InquiryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*domain.InquiryStatsDTO, error)
}

// InquiryHandler handles HTTP requests for inquiries
type InquiryHandler struct {
	inquiryService InquiryService
	maxBodyBytes   int64
	logger         *zap.Logger
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryService InquiryService, maxBodyBytes int64, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		maxBodyBytes:   maxBodyBytes,
		logger:         logger,
	}
}

// Create godoc
// @Summary Submit inquiry
// @Description Public endpoint for the website contact form. Confirmation and admin emails are sent in the background.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param request body domain.CreateInquiryRequest true "Inquiry data"
// @Success 201 {object} domain.InquirySummaryDTO
// @Failure 400 {object} domain.APIError
// @Failure 429 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /inquiries [post]
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInquiryRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondDecodeError(w, err)
		return
	}
	req.IPAddress = middleware.ClientIP(r)
	req.UserAgent = r.UserAgent()

	inquiry, err := h.inquiryService.Create(r.Context(), &req)
	if err != nil {
		h.handleInquiryError(w, r, err, "Failed to submit inquiry")
		return
	}

	w.Header().Set("Location", "/api/v1/inquiries/"+inquiry.ID.String())
	respondJSON(w, http.StatusCreated, mapper.ToInquirySummaryDTO(inquiry))
}

// List godoc
// @Summary List inquiries
// @Description Returns a page of inquiries, newest first. Network metadata is omitted.
// @Tags Inquiries
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(10)
// @Param status query string false "Filter by status" Enums(new, contacted, in-progress, converted, closed)
// @Param interest query string false "Filter by product interest" Enums(biofertilizer, reactor, bioplastic, multiple, custom)
// @Param priority query string false "Filter by priority" Enums(low, medium, high, urgent)
// @Param search query string false "Case-insensitive match on company, email or name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InquiryDTO}
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries [get]
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.inquiryService.List(r.Context(), parseInquiryFilter(r))
	if err != nil {
		h.logger.Error("failed to list inquiries", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list inquiries")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// parseInquiryFilter never fails: unparsable numbers fall back to defaults
// and empty values are treated as absent.
func parseInquiryFilter(r *http.Request) domain.InquiryFilter {
	q := r.URL.Query()

	filter := domain.InquiryFilter{
		Search: strings.TrimSpace(q.Get("search")),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	if v := strings.TrimSpace(q.Get("status")); v != "" {
		status := domain.Status(v)
		filter.Status = &status
	}
	if v := strings.TrimSpace(q.Get("interest")); v != "" {
		interest := domain.Interest(v)
		filter.Interest = &interest
	}
	if v := strings.TrimSpace(q.Get("priority")); v != "" {
		priority := domain.Priority(v)
		filter.Priority = &priority
	}

	filter.Normalize()
	return filter
}

// GetByID godoc
// @Summary Get inquiry
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} domain.InquiryDTO
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries/{id} [get]
func (h *InquiryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	inquiry, err := h.inquiryService.GetByID(r.Context(), id)
	if err != nil {
		h.handleInquiryError(w, r, err, "Failed to get inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// Update godoc
// @Summary Update inquiry
// @Description Only status, priority, assignedTo and followUpDate are applied. Other keys are ignored.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.UpdateInquiryRequest true "Fields to change"
// @Success 200 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries/{id} [patch]
func (h *InquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateInquiryRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	inquiry, err := h.inquiryService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleInquiryError(w, r, err, "Failed to update inquiry")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// AddNote godoc
// @Summary Add note
// @Description Appends a note authored by the signed-in admin
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body domain.AddNoteRequest true "Note"
// @Success 200 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries/{id}/notes [post]
func (h *InquiryHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req domain.AddNoteRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	inquiry, err := h.inquiryService.AddNote(r.Context(), id, req.Text)
	if err != nil {
		h.handleInquiryError(w, r, err, "Failed to add note")
		return
	}

	respondJSON(w, http.StatusOK, inquiry)
}

// Delete godoc
// @Summary Delete inquiry
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} domain.APIResponse
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries/{id} [delete]
func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.inquiryService.Delete(r.Context(), id); err != nil {
		h.handleInquiryError(w, r, err, "Failed to delete inquiry")
		return
	}

	respondJSON(w, http.StatusOK, domain.APIResponse{
		Success: true,
		Message: "Inquiry deleted successfully",
	})
}

// Stats godoc
// @Summary Inquiry statistics
// @Description Totals, status counts, submissions in the last 7 days and breakdowns by interest and status
// @Tags Inquiries
// @Produce json
// @Success 200 {object} domain.InquiryStatsDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /inquiries/stats [get]
func (h *InquiryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.inquiryService.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute inquiry stats", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get inquiry statistics")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// parseID answers malformed ids the same way as unknown ones
func (h *InquiryHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Inquiry not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *InquiryHandler) handleInquiryError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		respondValidationError(w, ve)
	case errors.Is(err, service.ErrInquiryNotFound):
		respondWithError(w, http.StatusNotFound, "Inquiry not found")
	default:
		log := logger.WithRequest(h.logger, r.Method, r.URL.Path, middleware.RequestIDFromContext(r.Context()))
		log.Error(strings.ToLower(fallback), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
