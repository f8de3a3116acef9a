package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns an admin update may touch
var updatableColumns = map[string]bool{
	"status":         true,
	"priority":       true,
	"assigned_to":    true,
	"follow_up_date": true,
}

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create persists a new inquiry. Normalization, validation and the volume
// priority rule run in the model's BeforeCreate hook.
func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	return r.db.WithContext(ctx).Omit("Notes").Create(inquiry).Error
}

// GetByID returns the full record with its notes in insertion order
func (r *InquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Notes", orderNotes).
		Where("id = ?", id).
		First(&inquiry).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// UpdateFields applies column updates to an inquiry and bumps updated_at.
// Columns outside the admin allow-list are rejected.
func (r *InquiryRepository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	for column := range updates {
		if !updatableColumns[column] {
			return fmt.Errorf("column %q is not updatable", column)
		}
	}

	values := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		values[k] = v
	}
	values["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&domain.Inquiry{}).
		Where("id = ?", id).
		UpdateColumns(values)
	if result.Error != nil {
		return fmt.Errorf("failed to update inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendNote adds a note after the existing ones. The parent row is locked
// on postgres so concurrent appends get distinct positions.
func (r *InquiryRepository) AppendNote(ctx context.Context, inquiryID uuid.UUID, note *domain.InquiryNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parent := tx.Model(&domain.Inquiry{}).Select("id").Where("id = ?", inquiryID)
		if tx.Dialector.Name() == "postgres" {
			parent = parent.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var locked domain.Inquiry
		if err := parent.First(&locked).Error; err != nil {
			return err
		}

		var next int
		err := tx.Model(&domain.InquiryNote{}).
			Where("inquiry_id = ?", inquiryID).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error
		if err != nil {
			return fmt.Errorf("failed to read note position: %w", err)
		}

		note.InquiryID = inquiryID
		note.Position = next
		if err := tx.Create(note).Error; err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		return tx.Model(&domain.Inquiry{}).
			Where("id = ?", inquiryID).
			UpdateColumn("updated_at", time.Now().UTC()).Error
	})
}

// Delete removes an inquiry together with its notes
func (r *InquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inquiry_id = ?", id).Delete(&domain.InquiryNote{}).Error; err != nil {
			return fmt.Errorf("failed to delete notes: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&domain.Inquiry{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete inquiry: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetEmailSent records a successful confirmation email
func (r *InquiryRepository) SetEmailSent(ctx context.Context, id uuid.UUID) error {
	return r.setFlag(ctx, id, "email_sent")
}

// SetAdminNotified records a successful admin alert
func (r *InquiryRepository) SetAdminNotified(ctx context.Context, id uuid.UUID) error {
	return r.setFlag(ctx, id, "admin_notified")
}

// setFlag leaves updated_at alone; dispatch bookkeeping is not an edit
func (r *InquiryRepository) setFlag(ctx context.Context, id uuid.UUID, column string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Inquiry{}).
		Where("id = ?", id).
		UpdateColumn(column, true)
	if result.Error != nil {
		return fmt.Errorf("failed to set %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func orderNotes(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
