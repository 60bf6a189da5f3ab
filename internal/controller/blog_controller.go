// internal/controller/blog_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autovilla/dealership-backend/internal/middleware"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/service"
)

type BlogController struct {
	BlogService *service.BlogService
}

func (c *BlogController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	q := r.URL.Query()

	blogs, pagination, err := c.BlogService.List(page, pageSize, true, q.Get("tag"), q.Get("search"))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"blogs":      blogs,
		"pagination": pagination,
	})
}

// ListAll includes drafts; admin surface.
func (c *BlogController) ListAll(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	q := r.URL.Query()

	blogs, pagination, err := c.BlogService.List(page, pageSize, false, q.Get("tag"), q.Get("search"))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"blogs":      blogs,
		"pagination": pagination,
	})
}

func (c *BlogController) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := c.BlogService.GetBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "", blog)
}

func (c *BlogController) Related(w http.ResponseWriter, r *http.Request) {
	related, err := c.BlogService.Related(chi.URLParam(r, "slug"))
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "", related)
}

type blogRequest struct {
	Title     string   `json:"title" validate:"required"`
	Slug      string   `json:"slug"`
	Content   string   `json:"content" validate:"required"`
	Excerpt   string   `json:"excerpt"`
	ImageURL  string   `json:"image_url"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

func (req *blogRequest) toModel() *model.Blog {
	blog := &model.Blog{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Tags:      req.Tags,
		Published: req.Published,
	}
	if req.ImageURL != "" {
		blog.ImageURL = &req.ImageURL
	}
	return blog
}

func (c *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	var body blogRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	blog := body.toModel()
	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		blog.AuthorID = claims.AdminID
	}

	if err := c.BlogService.Create(r.Context(), blog); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusCreated, "blog created", blog)
}

func (c *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	var body blogRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	blog := body.toModel()
	blog.ID = id
	if blog.Slug == "" {
		blog.Slug = service.Slugify(blog.Title)
	}

	if err := c.BlogService.Update(r.Context(), blog); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "blog updated", blog)
}

func (c *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	if err := c.BlogService.Delete(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "blog deleted", nil)
}

type commentRequest struct {
	AuthorName  string `json:"author_name" validate:"required"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email"`
	Content     string `json:"content" validate:"required"`
}

func (c *BlogController) AddComment(w http.ResponseWriter, r *http.Request) {
	blogID, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	var body commentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := c.BlogService.AddComment(blogID, body.AuthorName, body.AuthorEmail, body.Content)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusCreated, "comment submitted for review", comment)
}

func (c *BlogController) Comments(w http.ResponseWriter, r *http.Request) {
	blogID, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	comments, err := c.BlogService.Comments(blogID, true)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "", comments)
}

func (c *BlogController) PendingComments(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	comments, pagination, err := c.BlogService.PendingComments(page, pageSize)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"comments":   comments,
		"pagination": pagination,
	})
}

func (c *BlogController) ApproveComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := c.BlogService.ApproveComment(id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "comment approved", nil)
}

func (c *BlogController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := c.BlogService.DeleteComment(id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "comment deleted", nil)
}
