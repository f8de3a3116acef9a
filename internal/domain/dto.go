package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AdminRefDTO is a weak reference to an admin, resolved when possible
type AdminRefDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type InquiryNoteDTO struct {
	Text    string       `json:"text"`
	AddedBy *AdminRefDTO `json:"addedBy,omitempty"`
	AddedAt time.Time    `json:"addedAt"`
}

type InquiryDTO struct {
	ID            uuid.UUID        `json:"id"`
	Company       string           `json:"company"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Interest      Interest         `json:"interest"`
	Volume        *float64         `json:"volume,omitempty"`
	Message       string           `json:"message,omitempty"`
	Status        Status           `json:"status"`
	Priority      Priority         `json:"priority"`
	Source        string           `json:"source"`
	IPAddress     string           `json:"ipAddress,omitempty"`
	UserAgent     string           `json:"userAgent,omitempty"`
	AssignedTo    *AdminRefDTO     `json:"assignedTo,omitempty"`
	Notes         []InquiryNoteDTO `json:"notes"`
	FollowUpDate  *time.Time       `json:"followUpDate,omitempty"`
	EmailSent     bool             `json:"emailSent"`
	AdminNotified bool             `json:"adminNotified"`
	AgeInDays     int              `json:"ageInDays"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// InquirySummaryDTO is returned to the public submitter on creation
type InquirySummaryDTO struct {
	ID       uuid.UUID `json:"id"`
	Company  string    `json:"company"`
	Email    string    `json:"email"`
	Interest Interest  `json:"interest"`
}

// GroupCountDTO is one bucket of a grouped count
type GroupCountDTO struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type InquiryStatsDTO struct {
	Total      int64           `json:"total"`
	New        int64           `json:"new"`
	InProgress int64           `json:"inProgress"`
	Converted  int64           `json:"converted"`
	RecentWeek int64           `json:"recentWeek"`
	ByInterest []GroupCountDTO `json:"byInterest"`
	ByStatus   []GroupCountDTO `json:"byStatus"`
}

// Pagination metadata
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// API Response wrapper
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// InquiryFilter carries the admin list view query parameters.
// Nil or empty fields place no constraint on the result.
type InquiryFilter struct {
	Status   *Status
	Interest *Interest
	Priority *Priority
	Search   string
	Page     int
	Limit    int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize applies pagination defaults and bounds
func (f *InquiryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	// keep (Page-1)*Limit within int
	if maxPage := math.MaxInt / f.Limit; f.Page > maxPage {
		f.Page = maxPage
	}
}

// Offset returns the number of records to skip for the current page
func (f *InquiryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Request DTOs

type CreateInquiryRequest struct {
	Company  string   `json:"company"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Interest Interest `json:"interest"`
	Volume   *float64 `json:"volume,omitempty"`
	Message  string   `json:"message,omitempty"`

	// Captured by the transport layer, never read from the body
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// UpdateInquiryRequest holds the only fields an admin may change.
// Unknown JSON keys are dropped by the decoder.
type UpdateInquiryRequest struct {
	Status       *Status    `json:"status,omitempty"`
	Priority     *Priority  `json:"priority,omitempty"`
	AssignedTo   *string    `json:"assignedTo,omitempty"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
}

type AddNoteRequest struct {
	Text string `json:"text"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      AuthUserDTO `json:"user"`
}

type AuthUserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
