package service_test

import (
	"testing"
	"time"

	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/service"
)

// Mock blog repository serving a fixed published set
type MockBlogRepo struct {
	bySlug     map[string]*model.Blog
	candidates []*model.Blog
	viewBumps  []int
}

func (m *MockBlogRepo) GetBySlug(slug string) (*model.Blog, error) {
	if b, ok := m.bySlug[slug]; ok {
		return b, nil
	}
	return nil, errNotFoundBlog
}

func (m *MockBlogRepo) IncrementViewCount(id int) error {
	m.viewBumps = append(m.viewBumps, id)
	return nil
}

func (m *MockBlogRepo) ListByTagOverlap(tags []string, excludeID int) ([]*model.Blog, error) {
	return m.candidates, nil
}

// Stub implementations to satisfy the interface
func (m *MockBlogRepo) List(offset, limit int, publishedOnly bool, tag, search string) ([]*model.Blog, int, error) {
	return nil, 0, nil
}
func (m *MockBlogRepo) GetByID(id int) (*model.Blog, error) { return &model.Blog{ID: id}, nil }
func (m *MockBlogRepo) Create(b *model.Blog) error          { return nil }
func (m *MockBlogRepo) Update(b *model.Blog) error          { return nil }
func (m *MockBlogRepo) Delete(id int) error                 { return nil }
func (m *MockBlogRepo) CountByPublished() (int, int, error) { return 0, 0, nil }

var errNotFoundBlog = &blogMissingError{}

type blogMissingError struct{}

func (e *blogMissingError) Error() string { return "blog not found" }

func TestRelatedRanking(t *testing.T) {
	day := 24 * time.Hour
	now := time.Now()

	current := &model.Blog{ID: 1, Slug: "current", Tags: []string{"suv", "buying-guide", "diesel"}}
	repo := &MockBlogRepo{
		bySlug: map[string]*model.Blog{"current": current},
		candidates: []*model.Blog{
			{ID: 2, Slug: "one-shared-old", Tags: []string{"suv"}, CreatedAt: now.Add(-10 * day)},
			{ID: 3, Slug: "two-shared", Tags: []string{"suv", "diesel"}, CreatedAt: now.Add(-5 * day)},
			{ID: 4, Slug: "one-shared-new", Tags: []string{"buying-guide", "electric"}, CreatedAt: now.Add(-1 * day)},
			{ID: 5, Slug: "three-shared", Tags: []string{"suv", "buying-guide", "diesel"}, CreatedAt: now.Add(-20 * day)},
			{ID: 6, Slug: "one-shared-mid", Tags: []string{"diesel"}, CreatedAt: now.Add(-3 * day)},
		},
	}
	svc := &service.BlogService{BlogRepo: repo}

	related, err := svc.Related("current")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(related) != 3 {
		t.Fatalf("expected 3 related posts, got %d", len(related))
	}
	// Most shared tags first, then recency breaks ties.
	want := []int{5, 3, 4}
	for i, b := range related {
		if b.ID != want[i] {
			t.Errorf("position %d: expected blog %d, got %d", i, want[i], b.ID)
		}
	}
}

func TestRelatedNoTags(t *testing.T) {
	repo := &MockBlogRepo{
		bySlug: map[string]*model.Blog{"plain": {ID: 9, Slug: "plain"}},
	}
	svc := &service.BlogService{BlogRepo: repo}

	related, err := svc.Related("plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(related) != 0 {
		t.Errorf("a post without tags has no related posts, got %d", len(related))
	}
}

func TestGetBySlugBumpsViews(t *testing.T) {
	repo := &MockBlogRepo{
		bySlug: map[string]*model.Blog{"hit": {ID: 7, Slug: "hit", ViewCount: 41}},
	}
	svc := &service.BlogService{BlogRepo: repo}

	blog, err := svc.GetBySlug("hit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blog.ViewCount != 42 {
		t.Errorf("expected view count 42, got %d", blog.ViewCount)
	}
	if len(repo.viewBumps) != 1 || repo.viewBumps[0] != 7 {
		t.Errorf("expected one bump for blog 7, got %v", repo.viewBumps)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Five checks before buying a used SUV": "five-checks-before-buying-a-used-suv",
		"  Diesel or petrol?  ":                "diesel-or-petrol",
		"2021 Land-Cruiser!! (review)":         "2021-land-cruiser-review",
		"---":                                  "",
	}
	for in, want := range cases {
		if got := service.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
