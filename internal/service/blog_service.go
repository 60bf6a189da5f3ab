// internal/service/blog_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/repository"
	"github.com/autovilla/dealership-backend/internal/storage"
)

const relatedBlogLimit = 3

type BlogService struct {
	BlogRepo    repository.BlogRepositoryInterface
	CommentRepo repository.CommentRepositoryInterface
	Images      storage.ImageStore
	Log         zerolog.Logger
}

func (s *BlogService) List(page, pageSize int, publishedOnly bool, tag, search string) ([]*model.Blog, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	blogs, total, err := s.BlogRepo.List(offset, pageSize, publishedOnly, tag, search)
	if err != nil {
		return nil, nil, err
	}
	return blogs, paginationMap(page, pageSize, total), nil
}

// GetBySlug returns a post and bumps its view counter. The bump is best
// effort; a failed counter update never hides the post.
func (s *BlogService) GetBySlug(slug string) (*model.Blog, error) {
	blog, err := s.BlogRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if err := s.BlogRepo.IncrementViewCount(blog.ID); err != nil {
		s.Log.Warn().Err(err).Str("slug", slug).Msg("could not bump view count")
	} else {
		blog.ViewCount++
	}
	return blog, nil
}

// Related ranks published posts by shared-tag count, breaking ties by
// recency, and returns at most three.
func (s *BlogService) Related(slug string) ([]*model.Blog, error) {
	blog, err := s.BlogRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if len(blog.Tags) == 0 {
		return []*model.Blog{}, nil
	}

	candidates, err := s.BlogRepo.ListByTagOverlap(blog.Tags, blog.ID)
	if err != nil {
		return nil, err
	}

	tagSet := make(map[string]bool, len(blog.Tags))
	for _, t := range blog.Tags {
		tagSet[t] = true
	}
	score := func(b *model.Blog) int {
		shared := 0
		for _, t := range b.Tags {
			if tagSet[t] {
				shared++
			}
		}
		return shared
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := score(candidates[i]), score(candidates[j])
		if si != sj {
			return si > sj
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	if len(candidates) > relatedBlogLimit {
		candidates = candidates[:relatedBlogLimit]
	}
	return candidates, nil
}

func (s *BlogService) Create(ctx context.Context, blog *model.Blog) error {
	if blog.Slug == "" {
		blog.Slug = Slugify(blog.Title)
	}
	if blog.Slug == "" {
		return appErrors.NewValidation("title is required")
	}
	if err := s.resolveImage(ctx, blog); err != nil {
		return err
	}
	return s.BlogRepo.Create(blog)
}

func (s *BlogService) Update(ctx context.Context, blog *model.Blog) error {
	if err := s.resolveImage(ctx, blog); err != nil {
		return err
	}
	return s.BlogRepo.Update(blog)
}

func (s *BlogService) Delete(ctx context.Context, id int) error {
	blog, err := s.BlogRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.BlogRepo.Delete(id); err != nil {
		return err
	}
	if blog.ImageURL != nil {
		if err := s.Images.Delete(ctx, *blog.ImageURL); err != nil {
			s.Log.Warn().Err(err).Int("blog_id", id).Msg("could not delete blog image")
		}
	}
	return nil
}

// AddComment stores an unapproved visitor comment on a published post.
func (s *BlogService) AddComment(blogID int, authorName, authorEmail, content string) (*model.Comment, error) {
	if strings.TrimSpace(authorName) == "" || strings.TrimSpace(content) == "" {
		return nil, appErrors.NewValidation("name and content are required")
	}
	if _, err := s.BlogRepo.GetByID(blogID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		BlogID:      blogID,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Content:     content,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *BlogService) Comments(blogID int, approvedOnly bool) ([]*model.Comment, error) {
	return s.CommentRepo.ListByBlog(blogID, approvedOnly)
}

func (s *BlogService) PendingComments(page, pageSize int) ([]*model.Comment, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	comments, total, err := s.CommentRepo.ListPending(offset, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return comments, paginationMap(page, pageSize, total), nil
}

func (s *BlogService) ApproveComment(id int) error {
	return s.CommentRepo.Approve(id)
}

func (s *BlogService) DeleteComment(id int) error {
	return s.CommentRepo.Delete(id)
}

func (s *BlogService) resolveImage(ctx context.Context, blog *model.Blog) error {
	if blog.ImageURL == nil || !storage.IsDataURI(*blog.ImageURL) {
		return nil
	}
	uploaded, err := s.Images.Upload(ctx, "blogs", *blog.ImageURL)
	if err != nil {
		return fmt.Errorf("uploading blog image: %w", err)
	}
	blog.ImageURL = &uploaded
	return nil
}

// Slugify turns a title into a URL slug: lowercase, alphanumerics kept,
// everything else collapsed to single dashes.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
