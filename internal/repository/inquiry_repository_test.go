package repository

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/morphergyx/inquiry-api/internal/domain"
	"github.com/morphergyx/inquiry-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.SetupTestDB(t)
}

func newInquiry(company string, createdAt time.Time) *domain.Inquiry {
	inq := &domain.Inquiry{
		Company:   company,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "+1 555 0100",
		Interest:  domain.InterestReactor,
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
	}
	inq.CreatedAt = createdAt
	return inq
}

func volume(v float64) *float64 { return &v }

func TestInquiryRepository_CreateAndGet(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()

	inq := newInquiry("  Acme Corp  ", time.Time{})
	inq.Email = "  Jane@Example.COM "
	inq.Volume = volume(150000)
	require.NoError(t, repo.Create(ctx, inq))
	require.NotEqual(t, uuid.Nil, inq.ID)

	got, err := repo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Company)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, domain.PriorityUrgent, got.Priority)
	assert.Equal(t, domain.StatusNew, got.Status)
	assert.Equal(t, domain.DefaultSource, got.Source)
	assert.Equal(t, "203.0.113.7", got.IPAddress)
	assert.False(t, got.EmailSent)
	assert.Empty(t, got.Notes)
}

func TestInquiryRepository_CreateRejectsInvalid(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))

	inq := newInquiry("Acme", time.Time{})
	inq.Email = "not-an-email"
	err := repo.Create(context.Background(), inq)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestInquiryRepository_GetByID_NotFound(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInquiryRepository_List_SearchAndPagination(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// 15 matches spread over company, email and name, plus unrelated records
	var matchIDs []uuid.UUID
	for i := 0; i < 15; i++ {
		inq := newInquiry(fmt.Sprintf("Company %02d", i), base.Add(time.Duration(i)*time.Hour))
		switch i % 3 {
		case 0:
			inq.Company = fmt.Sprintf("ACME Holdings %02d", i)
		case 1:
			inq.Email = fmt.Sprintf("buyer%d@acme.io", i)
		case 2:
			inq.Name = fmt.Sprintf("Acme Person %d", i)
		}
		require.NoError(t, repo.Create(ctx, inq))
		matchIDs = append(matchIDs, inq.ID)
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(ctx, newInquiry(fmt.Sprintf("Other %d", i), base.Add(-time.Hour))))
	}

	page2, total, err := repo.List(ctx, domain.InquiryFilter{Search: "acme", Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	require.Len(t, page2, 5)

	// newest first: page 2 holds the five oldest matches
	for i, inq := range page2 {
		assert.Equal(t, matchIDs[4-i], inq.ID)
		assert.Empty(t, inq.IPAddress)
		assert.Empty(t, inq.UserAgent)
	}

	all, total, err := repo.List(ctx, domain.InquiryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(19), total)
	assert.Len(t, all, domain.DefaultLimit)
}

func TestInquiryRepository_List_Filters(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()

	a := newInquiry("Alpha", time.Time{})
	a.Interest = domain.InterestBioplastic
	require.NoError(t, repo.Create(ctx, a))

	b := newInquiry("Beta", time.Time{})
	b.Volume = volume(75000)
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateFields(ctx, b.ID, map[string]interface{}{"status": domain.StatusContacted}))

	interest := domain.InterestBioplastic
	got, total, err := repo.List(ctx, domain.InquiryFilter{Interest: &interest})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, a.ID, got[0].ID)

	status := domain.StatusContacted
	priority := domain.PriorityHigh
	got, total, err = repo.List(ctx, domain.InquiryFilter{Status: &status, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, b.ID, got[0].ID)

	empty := domain.Status("")
	_, total, err = repo.List(ctx, domain.InquiryFilter{Status: &empty, Search: "   "})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	got, total, err = repo.List(ctx, domain.InquiryFilter{Search: "nomatch"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInquiryRepository_List_SearchIsLiteral(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newInquiry("100% Organic", time.Time{})))
	require.NoError(t, repo.Create(ctx, newInquiry("Plain Farms", time.Time{})))

	_, total, err := repo.List(ctx, domain.InquiryFilter{Search: "%"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSearchCondition(t *testing.T) {
	cond, args := searchCondition("postgres", "Äpfel_AG")
	assert.Contains(t, cond, "company ILIKE ?")
	assert.NotContains(t, cond, "LOWER(")
	assert.Equal(t, []interface{}{`%Äpfel\_AG%`, `%Äpfel\_AG%`, `%Äpfel\_AG%`}, args)

	cond, args = searchCondition("sqlite", "ACME")
	assert.Contains(t, cond, "LOWER(company) LIKE ?")
	assert.Equal(t, "%acme%", args[0])
}

func TestInquiryRepository_List_PageBeyondRange(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newInquiry("Acme", time.Time{})))

	page, total, err := repo.List(ctx, domain.InquiryFilter{Page: math.MaxInt, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Empty(t, page)
}

func TestInquiryRepository_UpdateFields(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()

	inq := newInquiry("Acme", time.Time{})
	require.NoError(t, repo.Create(ctx, inq))

	followUp := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	err := repo.UpdateFields(ctx, inq.ID, map[string]interface{}{
		"status":         domain.StatusInProgress,
		"assigned_to":    "admin-001",
		"follow_up_date": followUp,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, "admin-001", *got.AssignedTo)
	require.NotNil(t, got.FollowUpDate)
	assert.True(t, followUp.Equal(*got.FollowUpDate))
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	err = repo.UpdateFields(ctx, inq.ID, map[string]interface{}{"company": "Hijacked"})
	assert.Error(t, err)

	err = repo.UpdateFields(ctx, uuid.New(), map[string]interface{}{"status": domain.StatusClosed})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInquiryRepository_AppendNote(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()

	inq := newInquiry("Acme", time.Time{})
	require.NoError(t, repo.Create(ctx, inq))

	author := "admin-001"
	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, repo.AppendNote(ctx, inq.ID, &domain.InquiryNote{Text: text, AddedBy: &author}))
	}

	got, err := repo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 3)
	for i, text := range []string{"first", "second", "third"} {
		assert.Equal(t, text, got.Notes[i].Text)
		assert.Equal(t, i, got.Notes[i].Position)
		assert.False(t, got.Notes[i].AddedAt.IsZero())
	}

	err = repo.AppendNote(ctx, uuid.New(), &domain.InquiryNote{Text: "orphan"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInquiryRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInquiryRepository(db)
	ctx := context.Background()

	inq := newInquiry("Acme", time.Time{})
	require.NoError(t, repo.Create(ctx, inq))
	require.NoError(t, repo.AppendNote(ctx, inq.ID, &domain.InquiryNote{Text: "note"}))

	require.NoError(t, repo.Delete(ctx, inq.ID))

	_, err := repo.GetByID(ctx, inq.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var notes int64
	require.NoError(t, db.Model(&domain.InquiryNote{}).Where("inquiry_id = ?", inq.ID).Count(&notes).Error)
	assert.Zero(t, notes)

	assert.ErrorIs(t, repo.Delete(ctx, inq.ID), gorm.ErrRecordNotFound)
}

func TestInquiryRepository_SetFlags(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()

	inq := newInquiry("Acme", time.Time{})
	require.NoError(t, repo.Create(ctx, inq))

	require.NoError(t, repo.SetAdminNotified(ctx, inq.ID))

	got, err := repo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.True(t, got.AdminNotified)
	assert.False(t, got.EmailSent)

	require.NoError(t, repo.SetEmailSent(ctx, inq.ID))
	got, err = repo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailSent)

	assert.ErrorIs(t, repo.SetEmailSent(ctx, uuid.New()), gorm.ErrRecordNotFound)
}

func TestInquiryRepository_Stats(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	old := newInquiry("Old", now.AddDate(0, 0, -30))
	require.NoError(t, repo.Create(ctx, old))
	for i := 0; i < 3; i++ {
		inq := newInquiry(fmt.Sprintf("Recent %d", i), now.Add(-time.Duration(i)*time.Hour))
		if i == 0 {
			inq.Interest = domain.InterestCustom
		}
		require.NoError(t, repo.Create(ctx, inq))
	}
	require.NoError(t, repo.UpdateFields(ctx, old.ID, map[string]interface{}{"status": domain.StatusConverted}))

	recent, err := repo.CountCreatedSince(ctx, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, int64(3), recent)

	converted, err := repo.CountByStatus(ctx, domain.StatusConverted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), converted)

	byInterest, err := repo.GroupCountBy(ctx, "interest")
	require.NoError(t, err)
	assert.Equal(t, []GroupCount{
		{Key: "reactor", Count: 3},
		{Key: "custom", Count: 1},
	}, byInterest)

	_, err = repo.GroupCountBy(ctx, "email")
	assert.Error(t, err)
}

func TestInquiryRepository_ListDueFollowUps(t *testing.T) {
	repo := NewInquiryRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	due := newInquiry("Due", time.Time{})
	closed := newInquiry("Closed", time.Time{})
	later := newInquiry("Later", time.Time{})
	for _, inq := range []*domain.Inquiry{due, closed, later} {
		require.NoError(t, repo.Create(ctx, inq))
	}
	require.NoError(t, repo.UpdateFields(ctx, due.ID, map[string]interface{}{"follow_up_date": now.Add(-time.Hour)}))
	require.NoError(t, repo.UpdateFields(ctx, closed.ID, map[string]interface{}{
		"follow_up_date": now.Add(-time.Hour),
		"status":         domain.StatusClosed,
	}))
	require.NoError(t, repo.UpdateFields(ctx, later.ID, map[string]interface{}{"follow_up_date": now.Add(48 * time.Hour)}))

	got, err := repo.ListDueFollowUps(ctx, now, 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, due.ID, got[0].ID)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, escapeLike(`100%_a\b`))
}
