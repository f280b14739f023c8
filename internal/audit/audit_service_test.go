package audit

import (
	"context"
	"testing"
	"time"

	auditerrors "supplyhr/internal/audit/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	entries []Entry
}

func (f *fakeRepo) Create(ctx context.Context, e *Entry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Entry, error) {
	var rows []Entry
	for _, e := range f.entries {
		if e.CompanyID.String() != companyID {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		if filter.Start != nil && e.OccurredAt.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && e.OccurredAt.After(*filter.End) {
			continue
		}
		rows = append(rows, e)
	}
	return rows, nil
}

func TestService_Record(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	companyID := uuid.NewString()
	actorID := uuid.NewString()

	err := svc.Record(context.Background(), companyID, RecordRequest{
		ActorID:    actorID,
		Action:     "attendance.checked_in",
		EntityType: "attendance",
		EntityID:   uuid.NewString(),
		Message:    "attendance PRESENT on 2024-03-04",
		Meta:       map[string]any{"status": "PRESENT"},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)

	e := repo.entries[0]
	assert.Equal(t, companyID, e.CompanyID.String())
	assert.Equal(t, actorID, e.ActorID.String())
	assert.Equal(t, "attendance.checked_in", e.Action)
	require.NotNil(t, e.Meta)
	assert.JSONEq(t, `{"status":"PRESENT"}`, *e.Meta)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestService_Record_InvalidIDs(t *testing.T) {
	svc := NewService(&fakeRepo{})

	err := svc.Record(context.Background(), "not-a-uuid", RecordRequest{Action: "x"})
	assert.ErrorIs(t, err, auditerrors.ErrInvalidCompanyID)

	err = svc.Record(context.Background(), uuid.NewString(), RecordRequest{
		ActorID: "not-a-uuid",
		Action:  "x",
	})
	assert.ErrorIs(t, err, auditerrors.ErrInvalidActorID)
}

func TestService_GetAll_Filters(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	companyID := uuid.NewString()

	mustRecord := func(action, entityType string, occurredAt time.Time) {
		require.NoError(t, svc.Record(context.Background(), companyID, RecordRequest{
			Action:     action,
			EntityType: entityType,
			Message:    action,
		}))
		repo.entries[len(repo.entries)-1].OccurredAt = occurredAt
	}

	mustRecord("attendance.checked_in", "attendance", time.Date(2024, 3, 4, 8, 20, 0, 0, time.UTC))
	mustRecord("attendance.checked_out", "attendance", time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC))
	mustRecord("purchase_order.approved", "purchase_order", time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC))

	all, err := svc.GetAll(context.Background(), companyID, ListFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byType, err := svc.GetAll(context.Background(), companyID, ListFilterRequest{EntityType: "attendance"})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	// End date is inclusive for the whole day.
	byRange, err := svc.GetAll(context.Background(), companyID, ListFilterRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-04",
	})
	require.NoError(t, err)
	assert.Len(t, byRange, 2)

	_, err = svc.GetAll(context.Background(), companyID, ListFilterRequest{StartDate: "04/03/2024"})
	assert.ErrorIs(t, err, auditerrors.ErrInvalidDateFormat)
}
