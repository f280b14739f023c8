package purchaseorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"supplyhr/internal/events"
	"supplyhr/internal/messaging/kafka"
	"supplyhr/internal/shared/contextutil"
	"supplyhr/internal/shared/counter"

	purchaseordererrors "supplyhr/internal/purchaseorder/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StockAdjuster is the slice of the inventory repository the receive
// step needs. Receiving an order books its lines into stock.
type StockAdjuster interface {
	AdjustQuantity(ctx context.Context, companyID, id string, delta int64) (int64, error)
}

//go:generate mockgen -source=purchase_order_service.go -destination=mock/purchase_order_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateOrderRequest) (OrderResponse, error)
	GetAll(ctx context.Context, companyID string) ([]OrderResponse, error)
	GetAllBySupplier(ctx context.Context, companyID, supplierID string) ([]OrderResponse, error)
	GetByID(ctx context.Context, companyID, id string) (OrderResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateOrderRequest) (OrderResponse, error)
	Submit(ctx context.Context, companyID, actorID, id string) (OrderResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (OrderResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, reason string) (OrderResponse, error)
	Receive(ctx context.Context, companyID, actorID, id string) (OrderResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (OrderResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	stock   StockAdjuster
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, stock StockAdjuster, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, stock, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	stock StockAdjuster,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("purchaseorder.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("purchaseorder.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		stock:   stock,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateOrderRequest) (OrderResponse, error) {
	s.logger.Debug("create purchase order requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("supplier_id", req.SupplierID),
		zap.Int("lines", len(req.Lines)),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return OrderResponse{}, purchaseordererrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return OrderResponse{}, purchaseordererrors.ErrInvalidActorID
	}
	supplierUUID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return OrderResponse{}, purchaseordererrors.ErrInvalidSupplierID
	}
	if len(req.Lines) == 0 {
		return OrderResponse{}, purchaseordererrors.ErrEmptyOrderLines
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create purchase order begin tx failed", zap.Error(err))
		return OrderResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.SupplierExists(ctx, companyID, req.SupplierID)
	if err != nil {
		s.logger.Error("create purchase order supplier check failed", zap.Error(err))
		return OrderResponse{}, err
	}
	if !exists {
		return OrderResponse{}, purchaseordererrors.ErrSupplierNotFound
	}

	nextVal, err := s.counter.GetNextValue(ctx, companyID, "purchase_order_number")
	if err != nil {
		s.logger.Error("create purchase order generate number failed", zap.Error(err))
		return OrderResponse{}, err
	}

	po := &PurchaseOrder{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		OrderNumber: fmt.Sprintf("PO-%06d", nextVal),
		SupplierID:  supplierUUID,
		Status:      StatusDraft,
		Notes:       req.Notes,
		CreatedBy:   actorUUID,
		Lines:       buildLines(uuid.Nil, req.Lines),
	}
	for i := range po.Lines {
		po.Lines[i].PurchaseOrderID = po.ID
	}

	if err := qtx.Create(ctx, po); err != nil {
		s.logger.Error("create purchase order persist failed", zap.Error(err))
		return OrderResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create purchase order commit failed", zap.Error(err))
		return OrderResponse{}, err
	}

	s.logger.Info("create purchase order success",
		zap.String("purchase_order_id", po.ID.String()),
		zap.String("order_number", po.OrderNumber),
	)

	return mapToResponse(*po), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]OrderResponse, error) {
	pos, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(pos), nil
}

func (s *service) GetAllBySupplier(ctx context.Context, companyID, supplierID string) ([]OrderResponse, error) {
	pos, err := s.repo.FindAllBySupplier(ctx, companyID, supplierID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(pos), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (OrderResponse, error) {
	po, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, purchaseordererrors.ErrOrderNotFound
		}
		return OrderResponse{}, err
	}
	return mapToResponse(*po), nil
}

// Update rewrites supplier, notes and lines. Anything past DRAFT is
// frozen; approvers act on exactly what was submitted.
func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateOrderRequest) (OrderResponse, error) {
	s.logger.Debug("update purchase order requested",
		zap.String("purchase_order_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	supplierUUID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return OrderResponse{}, purchaseordererrors.ErrInvalidSupplierID
	}
	if len(req.Lines) == 0 {
		return OrderResponse{}, purchaseordererrors.ErrEmptyOrderLines
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update purchase order begin tx failed", zap.Error(err))
		return OrderResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	po, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, purchaseordererrors.ErrOrderNotFound
		}
		return OrderResponse{}, err
	}
	if po.Status != StatusDraft {
		return OrderResponse{}, purchaseordererrors.ErrDraftOnlyEdit
	}

	exists, err := qtx.SupplierExists(ctx, companyID, req.SupplierID)
	if err != nil {
		return OrderResponse{}, err
	}
	if !exists {
		return OrderResponse{}, purchaseordererrors.ErrSupplierNotFound
	}

	po.SupplierID = supplierUUID
	po.Notes = req.Notes
	po.Lines = buildLines(po.ID, req.Lines)

	if err := qtx.Update(ctx, po); err != nil {
		s.logger.Error("update purchase order persist failed", zap.Error(err))
		return OrderResponse{}, err
	}
	if err := qtx.ReplaceLines(ctx, po.ID.String(), po.Lines); err != nil {
		s.logger.Error("update purchase order lines persist failed", zap.Error(err))
		return OrderResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update purchase order commit failed", zap.Error(err))
		return OrderResponse{}, err
	}

	s.logger.Info("update purchase order success", zap.String("purchase_order_id", id))

	return mapToResponse(*po), nil
}

func (s *service) Submit(ctx context.Context, companyID, actorID, id string) (OrderResponse, error) {
	return s.transitionStatus(ctx, companyID, actorID, id, StatusSubmitted, nil)
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (OrderResponse, error) {
	return s.transitionStatus(ctx, companyID, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, reason string) (OrderResponse, error) {
	return s.transitionStatus(ctx, companyID, actorID, id, StatusRejected, &reason)
}

func (s *service) Receive(ctx context.Context, companyID, actorID, id string) (OrderResponse, error) {
	return s.transitionStatus(ctx, companyID, actorID, id, StatusReceived, nil)
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (OrderResponse, error) {
	return s.transitionStatus(ctx, companyID, actorID, id, StatusCanceled, nil)
}

func (s *service) transitionStatus(ctx context.Context, companyID, actorID, id, targetStatus string, rejectionReason *string) (OrderResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("transition purchase order status requested",
		zap.String("request_id", rid),
		zap.String("purchase_order_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return OrderResponse{}, purchaseordererrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return OrderResponse{}, purchaseordererrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition purchase order begin tx failed", zap.Error(err))
		return OrderResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	po, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, purchaseordererrors.ErrOrderNotFound
		}
		return OrderResponse{}, err
	}
	if !isAllowedStatusTransition(po.Status, targetStatus) {
		s.logger.Warn("transition purchase order status invalid",
			zap.String("purchase_order_id", id),
			zap.String("from_status", po.Status),
			zap.String("to_status", targetStatus),
		)
		return OrderResponse{}, purchaseordererrors.ErrInvalidStatusTransition
	}

	if targetStatus == StatusRejected && (rejectionReason == nil || *rejectionReason == "") {
		return OrderResponse{}, purchaseordererrors.ErrRejectionReasonRequired
	}

	po.Status = targetStatus
	now := time.Now().UTC()
	switch targetStatus {
	case StatusApproved:
		po.ApprovedBy = &actorUUID
		po.ApprovedAt = &now
		po.RejectionReason = nil
	case StatusRejected:
		po.RejectionReason = rejectionReason
	case StatusReceived:
		po.ReceivedAt = &now
	}

	if err := qtx.Update(ctx, po); err != nil {
		s.logger.Error("transition purchase order persist failed",
			zap.String("purchase_order_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return OrderResponse{}, err
	}

	// Receiving books every line into stock inside the same transaction.
	if targetStatus == StatusReceived && s.stock != nil {
		for _, line := range po.Lines {
			if _, err := s.stock.AdjustQuantity(ctx, companyID, line.ItemID.String(), line.Quantity); err != nil {
				s.logger.Error("receive purchase order stock adjust failed",
					zap.String("purchase_order_id", id),
					zap.String("item_id", line.ItemID.String()),
					zap.Error(err),
				)
				return OrderResponse{}, err
			}
		}
	}

	if targetStatus == StatusApproved && s.outbox != nil {
		event := events.PurchaseOrderApprovedEvent{
			EventType:       events.PurchaseOrderApproved,
			RequestID:       rid,
			PurchaseOrderID: po.ID.String(),
			CompanyID:       companyID,
			OrderNumber:     po.OrderNumber,
			SupplierID:      po.SupplierID.String(),
			ApprovedBy:      actorID,
			OccurredAt:      now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return OrderResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "purchase_order",
			AggregateID:   po.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PurchaseOrderLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("transition purchase order outbox persist failed",
				zap.String("purchase_order_id", id),
				zap.Error(err),
			)
			return OrderResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition purchase order commit failed",
			zap.String("purchase_order_id", id),
			zap.Error(err),
		)
		return OrderResponse{}, err
	}

	s.logger.Info("transition purchase order status success",
		zap.String("purchase_order_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*po), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	po, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return purchaseordererrors.ErrOrderNotFound
		}
		return err
	}
	if po.Status != StatusDraft {
		return purchaseordererrors.ErrDraftOnlyEdit
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func buildLines(poID uuid.UUID, reqs []OrderLineRequest) []OrderLine {
	lines := make([]OrderLine, len(reqs))
	for i, lr := range reqs {
		lines[i] = OrderLine{
			ID:              uuid.New(),
			PurchaseOrderID: poID,
			ItemID:          uuid.MustParse(lr.ItemID),
			Quantity:        lr.Quantity,
			UnitPrice:       lr.UnitPrice,
		}
	}
	return lines
}

func mapToResponse(po PurchaseOrder) OrderResponse {
	resp := OrderResponse{
		ID:          po.ID.String(),
		OrderNumber: po.OrderNumber,
		SupplierID:  po.SupplierID.String(),
		Status:      po.Status,
		Notes:       po.Notes,
		CreatedBy:   po.CreatedBy.String(),
		CompanyID:   po.CompanyID.String(),
		Lines:       make([]OrderLineResponse, len(po.Lines)),
	}
	for i, line := range po.Lines {
		resp.Lines[i] = OrderLineResponse{
			ID:        line.ID.String(),
			ItemID:    line.ItemID.String(),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		resp.TotalAmount += float64(line.Quantity) * line.UnitPrice
	}
	if po.ApprovedBy != nil {
		v := po.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if po.ApprovedAt != nil {
		v := po.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if po.ReceivedAt != nil {
		v := po.ReceivedAt.Format(time.RFC3339)
		resp.ReceivedAt = &v
	}
	resp.RejectionReason = po.RejectionReason
	return resp
}

func mapToListResponse(pos []PurchaseOrder) []OrderResponse {
	resp := make([]OrderResponse, len(pos))
	for i, po := range pos {
		resp[i] = mapToResponse(po)
	}
	return resp
}
