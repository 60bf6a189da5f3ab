// internal/service/review_service.go
package service

import (
	"strings"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/repository"
)

type ReviewService struct {
	ReviewRepo repository.ReviewRepositoryInterface
}

// Create stores a visitor review; reviews start unapproved.
func (s *ReviewService) Create(authorName string, rating int, content string) (*model.Review, error) {
	if strings.TrimSpace(authorName) == "" {
		return nil, appErrors.NewValidation("name is required")
	}
	if rating < 1 || rating > 5 {
		return nil, appErrors.NewValidation("rating must be between 1 and 5")
	}

	review := &model.Review{
		AuthorName: authorName,
		Rating:     rating,
		Content:    content,
	}
	if err := s.ReviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) List(page, pageSize int, approvedOnly bool) ([]*model.Review, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	reviews, total, err := s.ReviewRepo.List(offset, pageSize, approvedOnly)
	if err != nil {
		return nil, nil, err
	}
	return reviews, paginationMap(page, pageSize, total), nil
}

func (s *ReviewService) Approve(id int) error {
	return s.ReviewRepo.Approve(id)
}

func (s *ReviewService) Delete(id int) error {
	return s.ReviewRepo.Delete(id)
}
