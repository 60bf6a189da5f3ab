// internal/service/car_service.go
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/repository"
	"github.com/autovilla/dealership-backend/internal/storage"
)

type CarService struct {
	CarRepo repository.CarRepositoryInterface
	Images  storage.ImageStore
	Log     zerolog.Logger
}

func (s *CarService) List(filter model.CarFilter, page, pageSize int) ([]*model.Car, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	cars, total, err := s.CarRepo.List(filter, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return cars, paginationMap(page, pageSize, total), nil
}

func (s *CarService) ListFeatured() ([]*model.Car, error) {
	return s.CarRepo.ListFeatured(8)
}

func (s *CarService) Get(id int) (*model.Car, error) {
	return s.CarRepo.GetByID(id)
}

// Create stores a new listing, uploading inline image data first.
func (s *CarService) Create(ctx context.Context, car *model.Car) error {
	if err := s.resolveImage(ctx, car); err != nil {
		return err
	}
	return s.CarRepo.Create(car)
}

func (s *CarService) Update(ctx context.Context, car *model.Car) error {
	if err := s.resolveImage(ctx, car); err != nil {
		return err
	}
	return s.CarRepo.Update(car)
}

func (s *CarService) Delete(ctx context.Context, id int) error {
	car, err := s.CarRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.CarRepo.Delete(id); err != nil {
		return err
	}
	if car.ImageURL != nil {
		if err := s.Images.Delete(ctx, *car.ImageURL); err != nil {
			s.Log.Warn().Err(err).Int("car_id", id).Msg("could not delete car image")
		}
	}
	return nil
}

func (s *CarService) resolveImage(ctx context.Context, car *model.Car) error {
	if car.ImageURL == nil || !storage.IsDataURI(*car.ImageURL) {
		return nil
	}
	uploaded, err := s.Images.Upload(ctx, "cars", *car.ImageURL)
	if err != nil {
		return fmt.Errorf("uploading car image: %w", err)
	}
	car.ImageURL = &uploaded
	return nil
}
