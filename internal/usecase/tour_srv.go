package usecase

import (
	"context"
	"fmt"

	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"

	"go.uber.org/zap"
)

type TourService interface {
	List(ctx context.Context) ([]response.TourResponse, error)
	GetBySlug(ctx context.Context, slug string) (*response.TourResponse, error)
}

type tourService struct {
	tourRepo repository.TourRepository
	log      *zap.Logger
}

func NewTourService(tourRepo repository.TourRepository, log *zap.Logger) TourService {
	return &tourService{
		tourRepo: tourRepo,
		log:      log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) List(ctx context.Context) ([]response.TourResponse, error) {
	tours, err := s.tourRepo.FindAllPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}

	resp := make([]response.TourResponse, 0, len(tours))
	for _, t := range tours {
		resp = append(resp, response.TourToResponse(t))
	}
	return resp, nil
}

func (s *tourService) GetBySlug(ctx context.Context, slug string) (*response.TourResponse, error) {
	tour, err := s.tourRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get tour: %w", err)
	}
	if tour == nil || !tour.Published {
		return nil, fmt.Errorf("tour %s not found", slug)
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}
