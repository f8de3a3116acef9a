package mapper

import (
	"time"

	"github.com/morphergyx/inquiry-api/internal/domain"
)

// AdminResolver looks up the display details behind an admin id.
// Unknown ids resolve to nil.
type AdminResolver func(id string) *domain.AdminIdentity

// ToInquiryDTO converts Inquiry to InquiryDTO, resolving weak admin references
func ToInquiryDTO(inquiry *domain.Inquiry, resolve AdminResolver, now time.Time) domain.InquiryDTO {
	dto := domain.InquiryDTO{
		ID:            inquiry.ID,
		Company:       inquiry.Company,
		Name:          inquiry.Name,
		Email:         inquiry.Email,
		Phone:         inquiry.Phone,
		Interest:      inquiry.Interest,
		Volume:        inquiry.Volume,
		Message:       inquiry.Message,
		Status:        inquiry.Status,
		Priority:      inquiry.Priority,
		Source:        inquiry.Source,
		IPAddress:     inquiry.IPAddress,
		UserAgent:     inquiry.UserAgent,
		AssignedTo:    ToAdminRefDTO(inquiry.AssignedTo, resolve),
		Notes:         make([]domain.InquiryNoteDTO, 0, len(inquiry.Notes)),
		FollowUpDate:  inquiry.FollowUpDate,
		EmailSent:     inquiry.EmailSent,
		AdminNotified: inquiry.AdminNotified,
		AgeInDays:     inquiry.AgeInDays(now),
		CreatedAt:     inquiry.CreatedAt,
		UpdatedAt:     inquiry.UpdatedAt,
	}

	for _, note := range inquiry.Notes {
		dto.Notes = append(dto.Notes, domain.InquiryNoteDTO{
			Text:    note.Text,
			AddedBy: ToAdminRefDTO(note.AddedBy, resolve),
			AddedAt: note.AddedAt,
		})
	}

	return dto
}

// ToInquiryDTOs converts a page of inquiries
func ToInquiryDTOs(inquiries []domain.Inquiry, resolve AdminResolver, now time.Time) []domain.InquiryDTO {
	dtos := make([]domain.InquiryDTO, 0, len(inquiries))
	for i := range inquiries {
		dtos = append(dtos, ToInquiryDTO(&inquiries[i], resolve, now))
	}
	return dtos
}

// ToInquirySummaryDTO narrows a stored inquiry to the public view
// returned to the submitter
func ToInquirySummaryDTO(inquiry *domain.InquiryDTO) domain.InquirySummaryDTO {
	return domain.InquirySummaryDTO{
		ID:       inquiry.ID,
		Company:  inquiry.Company,
		Email:    inquiry.Email,
		Interest: inquiry.Interest,
	}
}

// ToAdminRefDTO keeps the raw id when the reference cannot be resolved
func ToAdminRefDTO(id *string, resolve AdminResolver) *domain.AdminRefDTO {
	if id == nil || *id == "" {
		return nil
	}
	ref := &domain.AdminRefDTO{ID: *id}
	if resolve != nil {
		if admin := resolve(*id); admin != nil {
			ref.Name = admin.Name
			ref.Email = admin.Email
		}
	}
	return ref
}
