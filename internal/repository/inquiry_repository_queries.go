package repository

import (
	"context"
	"strings"
	"time"

	"github.com/morphergyx/inquiry-api/internal/domain"
	"gorm.io/gorm"
)

// Columns never returned by the admin list view
var listOmittedColumns = []string{"ip_address", "user_agent"}

// List returns one page of inquiries matching the filter, newest first,
// together with the total number of matches.
func (r *InquiryRepository) List(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, int64, error) {
	filter.Normalize()

	var inquiries []domain.Inquiry
	var total int64

	// a fresh session so Count does not leak into the page query
	query := applyInquiryFilter(r.db.WithContext(ctx).Model(&domain.Inquiry{}), filter).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Inquiry{}, 0, nil
	}

	err := query.
		Omit(listOmittedColumns...).
		Preload("Notes", orderNotes).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&inquiries).Error

	return inquiries, total, err
}

// ListDueFollowUps returns open inquiries whose follow-up date is at or
// before the given time, oldest due first.
func (r *InquiryRepository) ListDueFollowUps(ctx context.Context, before time.Time, limit int) ([]domain.Inquiry, error) {
	var inquiries []domain.Inquiry
	err := r.db.WithContext(ctx).
		Omit(listOmittedColumns...).
		Where("follow_up_date IS NOT NULL AND follow_up_date <= ?", before).
		Where("status NOT IN ?", []domain.Status{domain.StatusConverted, domain.StatusClosed}).
		Order("follow_up_date ASC").
		Limit(limit).
		Find(&inquiries).Error
	return inquiries, err
}

func applyInquiryFilter(query *gorm.DB, filter domain.InquiryFilter) *gorm.DB {
	if filter.Status != nil && *filter.Status != "" {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Interest != nil && *filter.Interest != "" {
		query = query.Where("interest = ?", *filter.Interest)
	}
	if filter.Priority != nil && *filter.Priority != "" {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		cond, args := searchCondition(query.Dialector.Name(), search)
		query = query.Where(cond, args...)
	}
	return query
}

// searchCondition matches the term case-insensitively against company,
// email and name. Postgres folds with ILIKE under the database collation;
// sqlite's LOWER only folds ASCII letters.
func searchCondition(dialect, search string) (string, []interface{}) {
	if dialect == "postgres" {
		pattern := "%" + escapeLike(search) + "%"
		return `(company ILIKE ? ESCAPE '\' OR email ILIKE ? ESCAPE '\' OR name ILIKE ? ESCAPE '\')`,
			[]interface{}{pattern, pattern, pattern}
	}
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	return `(LOWER(company) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\')`,
		[]interface{}{pattern, pattern, pattern}
}

// escapeLike makes the search term match literally inside a LIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
