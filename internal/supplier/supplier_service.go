package supplier

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	suppliererrors "supplyhr/internal/supplier/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=supplier_service.go -destination=mock/supplier_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateSupplierRequest) (SupplierResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SupplierResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SupplierResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSupplierRequest) (SupplierResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateSupplierRequest,
) (SupplierResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return SupplierResponse{}, suppliererrors.ErrInvalidSupplierID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SupplierResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sup := &Supplier{
		ID:            uuid.New(),
		CompanyID:     cid,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      true,
	}

	if err := qtx.Create(ctx, sup); err != nil {
		return SupplierResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SupplierResponse{}, err
	}

	return mapToResponse(*sup), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]SupplierResponse, error) {
	sups, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(sups), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (SupplierResponse, error) {
	sup, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SupplierResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*sup), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateSupplierRequest,
) (SupplierResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SupplierResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sup, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SupplierResponse{}, mapRepositoryError(err)
	}

	sup.Name = req.Name
	sup.ContactPerson = req.ContactPerson
	sup.Email = req.Email
	sup.Phone = req.Phone
	sup.Address = req.Address
	if req.IsActive != nil {
		sup.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, sup); err != nil {
		return SupplierResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SupplierResponse{}, err
	}

	return mapToResponse(*sup), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
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
		return suppliererrors.ErrSupplierNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return suppliererrors.ErrSupplierAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return suppliererrors.ErrSupplierAlreadyExists
	}

	return err
}

func mapToResponse(sup Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            sup.ID.String(),
		Name:          sup.Name,
		ContactPerson: sup.ContactPerson,
		Email:         sup.Email,
		Phone:         sup.Phone,
		Address:       sup.Address,
		IsActive:      sup.IsActive,
		CompanyID:     sup.CompanyID.String(),
	}
}

func mapToListResponse(sups []Supplier) []SupplierResponse {
	res := make([]SupplierResponse, len(sups))
	for i, s := range sups {
		res[i] = mapToResponse(s)
	}
	return res
}
