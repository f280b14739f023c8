package inventory

import (
	"context"
	"database/sql"
	"testing"

	inventoryerrors "supplyhr/internal/inventory/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byID map[string]*Item
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Item{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, item *Item) error {
	f.byID[item.ID.String()] = item
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Item, error) {
	var out []Item
	for _, it := range f.byID {
		if it.CompanyID.String() == companyID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Item, error) {
	it, ok := f.byID[id]
	if !ok || it.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (f *fakeRepo) FindLowStockByCompany(ctx context.Context, companyID string) ([]Item, error) {
	var out []Item
	for _, it := range f.byID {
		if it.CompanyID.String() == companyID && it.LowStock() {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, item *Item) error {
	f.byID[item.ID.String()] = item
	return nil
}

func (f *fakeRepo) AdjustQuantity(ctx context.Context, companyID, id string, delta int64) (int64, error) {
	it, ok := f.byID[id]
	if !ok || it.CompanyID.String() != companyID {
		return 0, nil
	}
	if it.Quantity+delta < 0 {
		return 0, nil
	}
	it.Quantity += delta
	return 1, nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	delete(f.byID, id)
	return nil
}

func newSvc(t *testing.T) (Service, *fakeRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := newFakeRepo()
	return NewService(db, repo), repo, mock
}

func seedItem(repo *fakeRepo, companyID uuid.UUID, qty, reorder int64) *Item {
	item := &Item{
		ID:           uuid.New(),
		CompanyID:    companyID,
		SKU:          "SKU-100",
		Name:         "Packing Tape",
		Quantity:     qty,
		ReorderLevel: reorder,
	}
	repo.byID[item.ID.String()] = item
	return item
}

func TestService_AdjustStock(t *testing.T) {
	svc, repo, _ := newSvc(t)
	companyID := uuid.New()
	item := seedItem(repo, companyID, 10, 3)

	resp, err := svc.AdjustStock(context.Background(), companyID.String(), item.ID.String(), AdjustStockRequest{Delta: -4, Reason: "order picked"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.Quantity)
	assert.False(t, resp.LowStock)

	resp, err = svc.AdjustStock(context.Background(), companyID.String(), item.ID.String(), AdjustStockRequest{Delta: -5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Quantity)
	assert.True(t, resp.LowStock)
}

func TestService_AdjustStock_NeverBelowZero(t *testing.T) {
	svc, repo, _ := newSvc(t)
	companyID := uuid.New()
	item := seedItem(repo, companyID, 2, 0)

	_, err := svc.AdjustStock(context.Background(), companyID.String(), item.ID.String(), AdjustStockRequest{Delta: -3})
	assert.ErrorIs(t, err, inventoryerrors.ErrInsufficientStock)

	// Quantity untouched after the refused adjustment.
	got, err := svc.GetByID(context.Background(), companyID.String(), item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Quantity)
}

func TestService_AdjustStock_ZeroDelta(t *testing.T) {
	svc, repo, _ := newSvc(t)
	companyID := uuid.New()
	item := seedItem(repo, companyID, 2, 0)

	_, err := svc.AdjustStock(context.Background(), companyID.String(), item.ID.String(), AdjustStockRequest{Delta: 0})
	assert.ErrorIs(t, err, inventoryerrors.ErrZeroAdjustment)
}

func TestService_AdjustStock_UnknownItem(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, err := svc.AdjustStock(context.Background(), uuid.New().String(), uuid.New().String(), AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, inventoryerrors.ErrItemNotFound)
}

func TestService_GetLowStock(t *testing.T) {
	svc, repo, mock := newSvc(t)
	companyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(context.Background(), companyID.String(), CreateItemRequest{
		SKU:          "SKU-200",
		Name:         "Stretch Film",
		Quantity:     1,
		ReorderLevel: 5,
	})
	require.NoError(t, err)
	assert.True(t, created.LowStock)

	seedItem(repo, companyID, 50, 5)

	low, err := svc.GetLowStock(context.Background(), companyID.String())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "SKU-200", low[0].SKU)
}
