package inventory

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	inventoryerrors "supplyhr/internal/inventory/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=inventory_service.go -destination=mock/inventory_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateItemRequest) (ItemResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ItemResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ItemResponse, error)
	GetLowStock(ctx context.Context, companyID string) ([]ItemResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateItemRequest) (ItemResponse, error)
	AdjustStock(ctx context.Context, companyID, id string, req AdjustStockRequest) (ItemResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("inventory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("inventory.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateItemRequest,
) (ItemResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return ItemResponse{}, inventoryerrors.ErrItemNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ItemResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	item := &Item{
		ID:           uuid.New(),
		CompanyID:    cid,
		SKU:          strings.TrimSpace(req.SKU),
		Name:         req.Name,
		Description:  req.Description,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		UnitPrice:    req.UnitPrice,
	}

	if err := qtx.Create(ctx, item); err != nil {
		s.logger.Error("create item persist failed", zap.Error(err))
		return ItemResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ItemResponse{}, err
	}

	s.logger.Info("create item success",
		zap.String("item_id", item.ID.String()),
		zap.String("sku", item.SKU),
	)

	return mapToResponse(*item), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ItemResponse, error) {
	items, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(items), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ItemResponse, error) {
	item, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*item), nil
}

func (s *service) GetLowStock(ctx context.Context, companyID string) ([]ItemResponse, error) {
	items, err := s.repo.FindLowStockByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(items), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateItemRequest,
) (ItemResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ItemResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	item, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	item.Name = req.Name
	item.Description = req.Description
	item.ReorderLevel = req.ReorderLevel
	item.UnitPrice = req.UnitPrice

	if err := qtx.Update(ctx, item); err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ItemResponse{}, err
	}

	return mapToResponse(*item), nil
}

// AdjustStock applies the delta through a guarded update. A refused
// adjustment is reported as insufficient stock only when the item
// actually exists.
func (s *service) AdjustStock(
	ctx context.Context,
	companyID, id string,
	req AdjustStockRequest,
) (ItemResponse, error) {
	if req.Delta == 0 {
		return ItemResponse{}, inventoryerrors.ErrZeroAdjustment
	}

	s.logger.Debug("adjust stock requested",
		zap.String("company_id", companyID),
		zap.String("item_id", id),
		zap.Int64("delta", req.Delta),
		zap.String("reason", req.Reason),
	)

	rows, err := s.repo.AdjustQuantity(ctx, companyID, id, req.Delta)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}
	if rows == 0 {
		if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
			return ItemResponse{}, mapRepositoryError(err)
		}
		return ItemResponse{}, inventoryerrors.ErrInsufficientStock
	}

	item, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	if item.LowStock() {
		s.logger.Warn("item at or below reorder level",
			zap.String("item_id", id),
			zap.String("sku", item.SKU),
			zap.Int64("quantity", item.Quantity),
			zap.Int64("reorder_level", item.ReorderLevel),
		)
	}

	return mapToResponse(*item), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventoryerrors.ErrItemNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return inventoryerrors.ErrSKUAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return inventoryerrors.ErrSKUAlreadyExists
	}

	return err
}

func mapToResponse(item Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID.String(),
		SKU:          item.SKU,
		Name:         item.Name,
		Description:  item.Description,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
		UnitPrice:    item.UnitPrice,
		LowStock:     item.LowStock(),
		CompanyID:    item.CompanyID.String(),
	}
}

func mapToListResponse(items []Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i, it := range items {
		res[i] = mapToResponse(it)
	}
	return res
}
