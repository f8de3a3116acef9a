package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Interest represents the product line an inquiry is about
type Interest string

const (
	InterestBiofertilizer Interest = "biofertilizer"
	InterestReactor       Interest = "reactor"
	InterestBioplastic    Interest = "bioplastic"
	InterestMultiple      Interest = "multiple"
	InterestCustom        Interest = "custom"
)

// Interests lists every valid product interest in display order
var Interests = []Interest{
	InterestBiofertilizer,
	InterestReactor,
	InterestBioplastic,
	InterestMultiple,
	InterestCustom,
}

func (i Interest) IsValid() bool {
	for _, v := range Interests {
		if v == i {
			return true
		}
	}
	return false
}

// Status represents where an inquiry is in the sales triage
type Status string

const (
	StatusNew        Status = "new"
	StatusContacted  Status = "contacted"
	StatusInProgress Status = "in-progress"
	StatusConverted  Status = "converted"
	StatusClosed     Status = "closed"
)

var Statuses = []Status{
	StatusNew,
	StatusContacted,
	StatusInProgress,
	StatusConverted,
	StatusClosed,
}

func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Priority represents the urgency tier of an inquiry
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

func (p Priority) IsValid() bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

const (
	// DefaultSource is recorded for inquiries submitted through the public form
	DefaultSource = "website"

	// MaxVolume is the largest accepted annual volume in tonnes
	MaxVolume = 100000000
)

// Volume thresholds (tonnes/year) used to derive priority at creation
const (
	UrgentVolumeThreshold = 100000
	HighVolumeThreshold   = 50000
	MediumVolumeThreshold = 10000
)

// Inquiry is a business contact request submitted through the website
type Inquiry struct {
	BaseModel
	Company       string        `gorm:"type:varchar(200);not null;index" validate:"required,min=2,max=200"`
	Name          string        `gorm:"type:varchar(100);not null" validate:"required,min=2,max=100"`
	Email         string        `gorm:"type:varchar(255);not null;index" validate:"required,inquiry_email"`
	Phone         string        `gorm:"type:varchar(50);not null" validate:"required,phone"`
	Interest      Interest      `gorm:"type:varchar(50);not null;index" validate:"required,interest"`
	Volume        *float64      `gorm:"type:double precision" validate:"omitempty,gte=0,lte=100000000"`
	Message       string        `gorm:"type:text" validate:"max=2000"`
	Status        Status        `gorm:"type:varchar(50);not null;default:'new';index" validate:"status"`
	Priority      Priority      `gorm:"type:varchar(50);not null;default:'medium';index" validate:"priority"`
	Source        string        `gorm:"type:varchar(100);not null;default:'website'"`
	IPAddress     string        `gorm:"type:varchar(64);column:ip_address"`
	UserAgent     string        `gorm:"type:varchar(500);column:user_agent"`
	AssignedTo    *string       `gorm:"type:varchar(100);column:assigned_to"`
	Notes         []InquiryNote `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
	FollowUpDate  *time.Time    `gorm:"column:follow_up_date;index"`
	EmailSent     bool          `gorm:"not null;default:false;column:email_sent"`
	AdminNotified bool          `gorm:"not null;default:false;column:admin_notified"`
}

// InquiryNote is an append-only annotation left by an admin
type InquiryNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InquiryID uuid.UUID `gorm:"type:uuid;not null;index;column:inquiry_id"`
	Position  int       `gorm:"not null"`
	Text      string    `gorm:"type:text;not null"`
	AddedBy   *string   `gorm:"type:varchar(100);column:added_by"`
	AddedAt   time.Time `gorm:"not null;column:added_at"`
}

// ApplyDefaults fills the defaulted fields left empty by the caller
func (i *Inquiry) ApplyDefaults() {
	if i.Status == "" {
		i.Status = StatusNew
	}
	if i.Priority == "" {
		i.Priority = PriorityMedium
	}
	if i.Source == "" {
		i.Source = DefaultSource
	}
}

// ApplyVolumePriority derives priority from the declared annual volume.
// Only meaningful for a record that has not been persisted yet.
func (i *Inquiry) ApplyVolumePriority() {
	if i.Volume == nil {
		return
	}
	switch v := *i.Volume; {
	case v > UrgentVolumeThreshold:
		i.Priority = PriorityUrgent
	case v > HighVolumeThreshold:
		i.Priority = PriorityHigh
	case v > MediumVolumeThreshold:
		i.Priority = PriorityMedium
	}
}

// AgeInDays returns the number of started days since the inquiry was created
func (i *Inquiry) AgeInDays(now time.Time) int {
	if i.CreatedAt.IsZero() {
		return 0
	}
	return int(math.Ceil(math.Abs(now.Sub(i.CreatedAt).Hours()) / 24))
}

// BeforeCreate assigns the id and enforces field constraints and the
// volume priority rule for every new record, whatever path persists it.
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.ApplyDefaults()
	i.Normalize()
	if err := i.Validate(); err != nil {
		return err
	}
	i.ApplyVolumePriority()
	return nil
}

func (n *InquiryNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.AddedAt.IsZero() {
		n.AddedAt = time.Now().UTC()
	}
	return nil
}

// AdminIdentity is the resolved form of a weak reference to an admin
type AdminIdentity struct {
	ID    string
	Name  string
	Email string
}
