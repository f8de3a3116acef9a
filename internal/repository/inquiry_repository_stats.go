package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/morphergyx/inquiry-api/internal/domain"
)

// GroupCount is one bucket of a grouped count
type GroupCount struct {
	Key   string `gorm:"column:group_key"`
	Count int64  `gorm:"column:total"`
}

// Columns that may be grouped on
var groupableColumns = map[string]bool{
	"status":   true,
	"interest": true,
	"priority": true,
	"source":   true,
}

// Count returns the number of inquiries matching the filter (pagination ignored)
func (r *InquiryRepository) Count(ctx context.Context, filter domain.InquiryFilter) (int64, error) {
	var total int64
	err := applyInquiryFilter(r.db.WithContext(ctx).Model(&domain.Inquiry{}), filter).
		Count(&total).Error
	return total, err
}

// CountByStatus returns the number of inquiries in the given status
func (r *InquiryRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	return r.Count(ctx, domain.InquiryFilter{Status: &status})
}

// CountCreatedSince returns the number of inquiries created at or after since
func (r *InquiryRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Inquiry{}).
		Where("created_at >= ?", since).
		Count(&total).Error
	return total, err
}

// GroupCountBy counts inquiries per distinct value of column, largest first
func (r *InquiryRepository) GroupCountBy(ctx context.Context, column string) ([]GroupCount, error) {
	if !groupableColumns[column] {
		return nil, fmt.Errorf("cannot group inquiries by %q", column)
	}

	var results []GroupCount
	err := r.db.WithContext(ctx).
		Model(&domain.Inquiry{}).
		Select(column + " AS group_key, COUNT(*) AS total").
		Group(column).
		Order("total DESC, group_key ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group inquiries by %s: %w", column, err)
	}
	return results, nil
}
