package purchaseorder

import (
	"context"
	"database/sql"
	"testing"

	"supplyhr/internal/messaging/kafka"

	purchaseordererrors "supplyhr/internal/purchaseorder/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byID      map[string]*PurchaseOrder
	suppliers map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*PurchaseOrder{}, suppliers: map[string]bool{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, po *PurchaseOrder) error {
	f.byID[po.ID.String()] = po
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]PurchaseOrder, error) {
	var out []PurchaseOrder
	for _, po := range f.byID {
		if po.CompanyID.String() == companyID {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindAllBySupplier(ctx context.Context, companyID, supplierID string) ([]PurchaseOrder, error) {
	var out []PurchaseOrder
	for _, po := range f.byID {
		if po.CompanyID.String() == companyID && po.SupplierID.String() == supplierID {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PurchaseOrder, error) {
	po, ok := f.byID[id]
	if !ok || po.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return po, nil
}

func (f *fakeRepo) Update(ctx context.Context, po *PurchaseOrder) error {
	f.byID[po.ID.String()] = po
	return nil
}

func (f *fakeRepo) ReplaceLines(ctx context.Context, poID string, lines []OrderLine) error {
	if po, ok := f.byID[poID]; ok {
		po.Lines = lines
	}
	return nil
}

func (f *fakeRepo) SupplierExists(ctx context.Context, companyID, supplierID string) (bool, error) {
	return f.suppliers[supplierID], nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fakeStock struct {
	adjusted map[string]int64
}

func (f *fakeStock) AdjustQuantity(ctx context.Context, companyID, id string, delta int64) (int64, error) {
	if f.adjusted == nil {
		f.adjusted = map[string]int64{}
	}
	f.adjusted[id] += delta
	return 1, nil
}

type fixture struct {
	svc        Service
	repo       *fakeRepo
	outbox     *fakeOutbox
	stock      *fakeStock
	mock       sqlmock.Sqlmock
	companyID  string
	actorID    string
	supplierID string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newFakeRepo()
	outbox := &fakeOutbox{}
	stock := &fakeStock{}
	supplierID := uuid.New().String()
	repo.suppliers[supplierID] = true

	return &fixture{
		svc:        NewServiceWithOutbox(db, repo, &fakeCounter{}, outbox, stock),
		repo:       repo,
		outbox:     outbox,
		stock:      stock,
		mock:       mock,
		companyID:  uuid.New().String(),
		actorID:    uuid.New().String(),
		supplierID: supplierID,
	}
}

func (f *fixture) expectTx(n int) {
	for i := 0; i < n; i++ {
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
	}
}

func (f *fixture) createDraft(t *testing.T) OrderResponse {
	t.Helper()
	itemID := uuid.New().String()
	po, err := f.svc.Create(context.Background(), f.companyID, f.actorID, CreateOrderRequest{
		SupplierID: f.supplierID,
		Notes:      "monthly restock",
		Lines: []OrderLineRequest{
			{ItemID: itemID, Quantity: 20, UnitPrice: 3.5},
			{ItemID: uuid.New().String(), Quantity: 5, UnitPrice: 12},
		},
	})
	require.NoError(t, err)
	return po
}

func TestService_Create_AssignsNumberAndDraft(t *testing.T) {
	f := setup(t)
	f.expectTx(1)

	po := f.createDraft(t)

	assert.Equal(t, "PO-000001", po.OrderNumber)
	assert.Equal(t, StatusDraft, po.Status)
	assert.InDelta(t, 20*3.5+5*12, po.TotalAmount, 1e-9)
	assert.Len(t, po.Lines, 2)
}

func TestService_Create_UnknownSupplier(t *testing.T) {
	f := setup(t)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.Create(context.Background(), f.companyID, f.actorID, CreateOrderRequest{
		SupplierID: uuid.New().String(),
		Lines:      []OrderLineRequest{{ItemID: uuid.New().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, purchaseordererrors.ErrSupplierNotFound)
}

func TestService_Lifecycle_SubmitApproveReceive(t *testing.T) {
	f := setup(t)
	f.expectTx(4)

	po := f.createDraft(t)
	ctx := context.Background()

	po2, err := f.svc.Submit(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, po2.Status)

	po3, err := f.svc.Approve(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, po3.Status)
	require.NotNil(t, po3.ApprovedBy)
	assert.Equal(t, f.actorID, *po3.ApprovedBy)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, "purchase_order_approved", f.outbox.events[0].EventType)

	po4, err := f.svc.Receive(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusReceived, po4.Status)
	assert.NotNil(t, po4.ReceivedAt)

	// Each line was booked into stock.
	assert.Len(t, f.stock.adjusted, 2)
	for _, line := range po.Lines {
		assert.Equal(t, line.Quantity, f.stock.adjusted[line.ItemID])
	}
}

func TestService_Transition_Invalid(t *testing.T) {
	f := setup(t)
	f.expectTx(1)

	po := f.createDraft(t)
	ctx := context.Background()

	cases := []struct {
		name string
		fn   func() error
	}{
		{"draft cannot be approved", func() error {
			_, err := f.svc.Approve(ctx, f.companyID, f.actorID, po.ID)
			return err
		}},
		{"draft cannot be received", func() error {
			_, err := f.svc.Receive(ctx, f.companyID, f.actorID, po.ID)
			return err
		}},
		{"draft cannot be rejected", func() error {
			_, err := f.svc.Reject(ctx, f.companyID, f.actorID, po.ID, "nope")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f.mock.ExpectBegin()
			f.mock.ExpectRollback()
			assert.ErrorIs(t, tc.fn(), purchaseordererrors.ErrInvalidStatusTransition)
		})
	}
}

func TestService_Cancel_OnlyNonTerminal(t *testing.T) {
	f := setup(t)
	f.expectTx(4)

	po := f.createDraft(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)
	_, err = f.svc.Receive(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.svc.Cancel(ctx, f.companyID, f.actorID, po.ID)
	assert.ErrorIs(t, err, purchaseordererrors.ErrInvalidStatusTransition)

	f.expectTx(2)
	other := f.createDraft(t)
	canceled, err := f.svc.Cancel(ctx, f.companyID, f.actorID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, canceled.Status)
}

func TestService_Reject_RequiresReason(t *testing.T) {
	f := setup(t)
	f.expectTx(2)

	po := f.createDraft(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.svc.Reject(ctx, f.companyID, f.actorID, po.ID, "")
	assert.ErrorIs(t, err, purchaseordererrors.ErrRejectionReasonRequired)

	f.expectTx(1)
	rejected, err := f.svc.Reject(ctx, f.companyID, f.actorID, po.ID, "prices out of date")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
}

func TestService_Update_DraftOnly(t *testing.T) {
	f := setup(t)
	f.expectTx(2)

	po := f.createDraft(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.svc.Update(ctx, f.companyID, f.actorID, po.ID, UpdateOrderRequest{
		SupplierID: f.supplierID,
		Lines:      []OrderLineRequest{{ItemID: uuid.New().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, purchaseordererrors.ErrDraftOnlyEdit)
}

func TestService_Delete_DraftOnly(t *testing.T) {
	f := setup(t)
	f.expectTx(2)

	po := f.createDraft(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.companyID, f.actorID, po.ID)
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	err = f.svc.Delete(ctx, f.companyID, po.ID)
	assert.ErrorIs(t, err, purchaseordererrors.ErrDraftOnlyEdit)
}
