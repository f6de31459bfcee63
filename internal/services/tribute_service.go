package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tribute-api/internal/models"
	"tribute-api/internal/repositories"
)

// tributeService implements the TributeService interface
type tributeService struct {
	tributeRepo repositories.TributeRepository
	logger      *logrus.Logger
}

// NewTributeService creates a new tribute service instance
func NewTributeService(tributeRepo repositories.TributeRepository, logger *logrus.Logger) TributeService {
	if logger == nil {
		logger = logrus.New()
	}
	return &tributeService{
		tributeRepo: tributeRepo,
		logger:      logger,
	}
}

// CreateTribute stores a new tribute and returns it as stored
func (s *tributeService) CreateTribute(ctx context.Context, req *CreateTributeRequest) (*models.TributeResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("create tribute request cannot be nil")
	}

	tribute, err := models.NewTribute(req.From, req.Msg, req.Photos)
	if err != nil {
		return nil, fmt.Errorf("failed to encode photos: %w", err)
	}

	created, err := s.tributeRepo.Create(ctx, tribute)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("tribute_id", created.ID).Info("Tribute created")

	resp := created.ToResponse()
	return &resp, nil
}

// ListTributes returns one page of tributes, newest first, with pagination
// metadata. The page and the count are read separately and may disagree
// under concurrent writes.
func (s *tributeService) ListTributes(ctx context.Context, page models.PageRequest) (*TributePage, error) {
	tributes, err := s.tributeRepo.List(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.tributeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &TributePage{
		Tributes:   models.ToResponses(tributes),
		Pagination: models.NewPagination(page, total),
	}, nil
}

// UpdateTribute overwrites the author, message and photos of a tribute
func (s *tributeService) UpdateTribute(ctx context.Context, req *UpdateTributeRequest) (*models.TributeResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("update tribute request cannot be nil")
	}

	tribute, err := models.NewTribute(req.From, req.Msg, req.Photos)
	if err != nil {
		return nil, fmt.Errorf("failed to encode photos: %w", err)
	}
	tribute.ID = int64(req.ID)

	updated, err := s.tributeRepo.Update(ctx, tribute)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("tribute_id", updated.ID).Info("Tribute updated")

	resp := updated.ToResponse()
	return &resp, nil
}

// DeleteTribute removes a tribute by ID
func (s *tributeService) DeleteTribute(ctx context.Context, id int64) error {
	if err := s.tributeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithField("tribute_id", id).Info("Tribute deleted")
	return nil
}
