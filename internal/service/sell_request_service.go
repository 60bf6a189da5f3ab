// internal/service/sell_request_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/queue"
	"github.com/autovilla/dealership-backend/internal/repository"
	"github.com/autovilla/dealership-backend/internal/storage"
)

type SellRequestService struct {
	SellRepo repository.SellRequestRepositoryInterface
	Images   storage.ImageStore
	Queue    queue.Publisher
	// NotifyEmail is the staff inbox that receives intake notices.
	NotifyEmail string
	Log         zerolog.Logger
}

// Create stores a "sell your car" submission and queues the staff
// notification. A queue failure is logged, not surfaced: the visitor's
// submission is already persisted.
func (s *SellRequestService) Create(ctx context.Context, req *model.SellRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return appErrors.NewValidation("name and email are required")
	}
	if req.Make == "" || req.Model == "" {
		return appErrors.NewValidation("vehicle make and model are required")
	}

	if req.ImageURL != nil && storage.IsDataURI(*req.ImageURL) {
		uploaded, err := s.Images.Upload(ctx, "sell-requests", *req.ImageURL)
		if err != nil {
			return fmt.Errorf("uploading vehicle image: %w", err)
		}
		req.ImageURL = &uploaded
	}

	if err := s.SellRepo.Create(req); err != nil {
		return err
	}

	err := s.Queue.PublishEmailJob(queue.JobSellNotice, queue.SellNoticePayload{
		NotifyEmail:   s.NotifyEmail,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		Mileage:       req.Mileage,
		ExpectedPrice: req.ExpectedPrice,
		Condition:     req.Condition,
		Message:       req.Message,
	})
	if err != nil {
		s.Log.Warn().Err(err).Int("sell_request_id", req.ID).Msg("could not queue sell notice")
	}
	return nil
}

func (s *SellRequestService) List(page, pageSize int, status string) ([]*model.SellRequest, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	requests, total, err := s.SellRepo.List(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}
	return requests, paginationMap(page, pageSize, total), nil
}

func (s *SellRequestService) UpdateStatus(id int, status string) error {
	switch status {
	case model.SellRequestStatusNew, model.SellRequestStatusContacted, model.SellRequestStatusClosed:
	default:
		return appErrors.NewValidation("unknown status: %s", status)
	}
	return s.SellRepo.UpdateStatus(id, status)
}

func (s *SellRequestService) Delete(ctx context.Context, id int) error {
	req, err := s.SellRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.SellRepo.Delete(id); err != nil {
		return err
	}
	if req.ImageURL != nil {
		if err := s.Images.Delete(ctx, *req.ImageURL); err != nil {
			s.Log.Warn().Err(err).Int("sell_request_id", id).Msg("could not delete vehicle image")
		}
	}
	return nil
}
