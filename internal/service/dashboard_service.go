// internal/service/dashboard_service.go
package service

import (
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/repository"
)

type DashboardService struct {
	CarRepo        repository.CarRepositoryInterface
	BlogRepo       repository.BlogRepositoryInterface
	CommentRepo    repository.CommentRepositoryInterface
	ReviewRepo     repository.ReviewRepositoryInterface
	SubscriberRepo repository.SubscriberRepositoryInterface
	SellRepo       repository.SellRequestRepositoryInterface
	BroadcastRepo  repository.BroadcastRepositoryInterface
}

// DashboardStats is the admin landing-page aggregate.
type DashboardStats struct {
	Cars              map[string]int        `json:"cars"`
	FeaturedCars      int                   `json:"featured_cars"`
	BlogsPublished    int                   `json:"blogs_published"`
	BlogsDraft        int                   `json:"blogs_draft"`
	PendingComments   int                   `json:"pending_comments"`
	PendingReviews    int                   `json:"pending_reviews"`
	AverageRating     float64               `json:"average_rating"`
	ActiveSubscribers int                   `json:"active_subscribers"`
	SellRequests      map[string]int        `json:"sell_requests"`
	Broadcasts        *model.BroadcastStats `json:"broadcasts"`
}

// Stats gathers one aggregate query per breakdown. Any single failure
// fails the whole endpoint; there is no partial dashboard.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Cars, err = s.CarRepo.CountByStatus(); err != nil {
		return nil, err
	}
	if stats.FeaturedCars, err = s.CarRepo.CountFeatured(); err != nil {
		return nil, err
	}
	if stats.BlogsPublished, stats.BlogsDraft, err = s.BlogRepo.CountByPublished(); err != nil {
		return nil, err
	}
	if stats.PendingComments, err = s.CommentRepo.CountPending(); err != nil {
		return nil, err
	}
	if stats.PendingReviews, err = s.ReviewRepo.CountPending(); err != nil {
		return nil, err
	}
	if stats.AverageRating, err = s.ReviewRepo.AverageRating(); err != nil {
		return nil, err
	}
	if stats.ActiveSubscribers, err = s.SubscriberRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.SellRequests, err = s.SellRepo.CountByStatus(); err != nil {
		return nil, err
	}
	if stats.Broadcasts, err = s.BroadcastRepo.Stats(); err != nil {
		return nil, err
	}

	return stats, nil
}
