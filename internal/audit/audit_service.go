package audit

import (
	"context"
	"encoding/json"
	"time"

	"supplyhr/internal/shared/apperror"
	auditerrors "supplyhr/internal/audit/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, companyID string, req RecordRequest) error
	GetAll(ctx context.Context, companyID string, filter ListFilterRequest) ([]EntryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

// Record appends an entry. A failed append is logged and surfaced, but
// callers on hot paths deliberately ignore the error so auditing can never
// break the domain operation.
func (s *service) Record(ctx context.Context, companyID string, req RecordRequest) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return auditerrors.ErrInvalidCompanyID
	}

	e := &Entry{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		Action:     req.Action,
		EntityType: req.EntityType,
		Message:    req.Message,
		OccurredAt: time.Now().UTC(),
	}

	if req.ActorID != "" {
		actorUUID, err := uuid.Parse(req.ActorID)
		if err != nil {
			return auditerrors.ErrInvalidActorID
		}
		e.ActorID = &actorUUID
	}
	if req.EntityID != "" {
		v := req.EntityID
		e.EntityID = &v
	}
	if len(req.Meta) > 0 {
		raw, err := json.Marshal(req.Meta)
		if err != nil {
			return err
		}
		v := string(raw)
		e.Meta = &v
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("audit append failed",
			zap.String("company_id", companyID),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return apperror.Wrap(err, apperror.CodeStorageUnavailable,
			"Storage is temporarily unavailable", 503)
	}

	return nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilterRequest) ([]EntryResponse, error) {
	repoFilter := ListFilter{
		Action:     filter.Action,
		EntityType: filter.EntityType,
	}

	if filter.StartDate != "" {
		start, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			return nil, auditerrors.ErrInvalidDateFormat
		}
		repoFilter.Start = &start
	}
	if filter.EndDate != "" {
		end, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			return nil, auditerrors.ErrInvalidDateFormat
		}
		// Inclusive end of day.
		end = end.Add(24*time.Hour - time.Nanosecond)
		repoFilter.End = &end
	}

	rows, err := s.repo.FindAllByCompany(ctx, companyID, repoFilter)
	if err != nil {
		return nil, err
	}

	res := make([]EntryResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func mapToResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:         e.ID.String(),
		CompanyID:  e.CompanyID.String(),
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Message:    e.Message,
		Meta:       e.Meta,
		OccurredAt: e.OccurredAt.Format(time.RFC3339),
	}
	if e.ActorID != nil {
		v := e.ActorID.String()
		resp.ActorID = &v
	}
	return resp
}
